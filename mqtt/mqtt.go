// Package mqtt connects the controller to an MQTT broker for remote status
// and control.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"godoor/logger"
)

const (
	// PlainPort and TLSPort are used when Config.Port is 0.
	PlainPort = 1883
	TLSPort   = 8883

	keepAlive = 60 * time.Second
	opTimeout = 10 * time.Second
)

var errTimeout = errors.New("timed out")

// Config holds MQTT connection settings. An empty Host disables MQTT.
// Setting CACert or ClientCert switches to TLS.
type Config struct {
	Host       string `yaml:"host" env:"MQTT_HOST"`
	Port       int    `yaml:"port" env:"MQTT_PORT"`
	Username   string `yaml:"username" env:"MQTT_USERNAME"`
	Password   string `yaml:"password" env:"MQTT_PASSWORD"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
}

func (cfg Config) useTLS() bool {
	return cfg.CACert != "" || cfg.ClientCert != ""
}

// brokerURL returns the paho broker address, filling the default port.
func (cfg Config) brokerURL() string {
	scheme, port := "tcp", PlainPort
	if cfg.useTLS() {
		scheme, port = "ssl", TLSPort
	}
	if cfg.Port != 0 {
		port = cfg.Port
	}
	return fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, port)
}

// tlsConfig loads the CA pool and client key pair named in cfg.
func (cfg Config) tlsConfig() (*tls.Config, error) {
	conf := &tls.Config{}

	if cfg.CACert != "" {
		pem, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", cfg.CACert)
		}
		conf.RootCAs = pool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		pair, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		conf.Certificates = []tls.Certificate{pair}
	}

	return conf, nil
}

// Handlers holds callback functions for MQTT events. Nil handlers are skipped.
type Handlers struct {
	OnConnect    func()
	OnDisconnect func()
	OnMessage    func(topic string, payload []byte)
}

// Client is a broker connection, or a disabled stand-in when no host is set.
type Client struct {
	client   paho.Client
	handlers Handlers
	log      *zap.SugaredLogger
}

// New creates a client. It does not connect; call Connect.
func New(cfg Config, clientID string, handlers Handlers) (*Client, error) {
	c := &Client{
		handlers: handlers,
		log:      logger.Named("mqtt"),
	}
	if cfg.Host == "" {
		c.log.Info("MQTT disabled (no host configured)")
		return c, nil
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.brokerURL()).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(keepAlive).
		SetOnConnectHandler(func(paho.Client) { c.connected() }).
		SetConnectionLostHandler(func(_ paho.Client, err error) { c.lost(err) }).
		SetDefaultPublishHandler(func(_ paho.Client, msg paho.Message) { c.message(msg.Topic(), msg.Payload()) })

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}

	if cfg.useTLS() {
		conf, err := cfg.tlsConfig()
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
		opts.SetTLSConfig(conf)
	} else {
		c.log.Warn("MQTT using non-TLS connection")
	}

	routePahoLogs(c.log.Desugar())
	c.client = paho.NewClient(opts)
	return c, nil
}

// routePahoLogs sends paho's warnings and errors into zap.
func routePahoLogs(base *zap.Logger) {
	if l, err := zap.NewStdLogAt(base, zapcore.ErrorLevel); err == nil {
		paho.ERROR = l
		paho.CRITICAL = l
	}
	if l, err := zap.NewStdLogAt(base, zapcore.WarnLevel); err == nil {
		paho.WARN = l
	}
}

// IsEnabled reports whether a broker is configured.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// Connect connects to the broker. A disabled client runs OnConnect at once,
// so subscriptions are set up the same way in both modes.
func (c *Client) Connect() error {
	if !c.IsEnabled() {
		if c.handlers.OnConnect != nil {
			c.handlers.OnConnect()
		}
		return nil
	}
	if err := wait(c.client.Connect(), 0); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// Disconnect closes the connection. No-op if disabled.
func (c *Client) Disconnect() {
	if c.IsEnabled() {
		c.client.Disconnect(250)
	}
}

// Subscribe subscribes to topic at QoS 0. Messages go to OnMessage.
func (c *Client) Subscribe(topic string) error {
	if !c.IsEnabled() {
		return nil
	}
	if err := wait(c.client.Subscribe(topic, 0, nil), opTimeout); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// Publish sends payload at QoS 0 without waiting for delivery. No-op if disabled.
func (c *Client) Publish(topic string, payload []byte) {
	if c.IsEnabled() {
		c.client.Publish(topic, 0, false, payload)
	}
}

func (c *Client) connected() {
	c.log.Info("MQTT connection established")
	if c.handlers.OnConnect != nil {
		c.handlers.OnConnect()
	}
}

func (c *Client) lost(err error) {
	c.log.Warnw("MQTT connection lost", "error", err)
	if c.handlers.OnDisconnect != nil {
		c.handlers.OnDisconnect()
	}
}

func (c *Client) message(topic string, payload []byte) {
	if c.handlers.OnMessage != nil {
		c.handlers.OnMessage(topic, payload)
	}
}

// wait blocks on token. A zero timeout waits forever.
func wait(token paho.Token, timeout time.Duration) error {
	if timeout == 0 {
		token.Wait()
	} else if !token.WaitTimeout(timeout) {
		return errTimeout
	}
	return token.Error()
}
