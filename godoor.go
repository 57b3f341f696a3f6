package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"godoor/buzzer"
	"godoor/comm"
	"godoor/controller"
	"godoor/door"
	"godoor/doorbell"
	"godoor/eventpipe"
	"godoor/indicator"
	"godoor/light"
	"godoor/logger"
	"godoor/mqtt"
)

var myBuild string

// PingInterval is the period of the MQTT liveness message.
const PingInterval = 120 * time.Second

var (
	cfgFile  string
	logLevel string
	holdOpen bool

	rootCmd = &cobra.Command{
		Use:   "godoor",
		Short: "Run the door controller.",
		Long: `Runs the door, alarm and visitor controller.

Commands arrive on the serial channel, over MQTT or through the event pipe.
Status lines are written back on the serial channel and published to MQTT.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			level, ok := logger.ParseLogLevel(cfg.LogLevel)
			if !ok {
				return fmt.Errorf("invalid log level %q", cfg.LogLevel)
			}
			logger.SetLevel(level)
			defer logger.Sync()

			return run(ctx, cfg, holdOpen)
		},
	}
)

func main() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "godoor build %s\n", myBuild)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Logger().Errorw("godoor failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "cfg", "godoor.cfg", "config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level, overrides log_level from the config file")
	rootCmd.Flags().BoolVar(&holdOpen, "hold-open", false, "open the door at startup and leave automatic control off")
}

// App holds the application state and dependencies.
type App struct {
	cfg       *Config
	log       *zap.SugaredLogger
	ctrl      *controller.Controller
	channel   *comm.Channel
	mqtt      *mqtt.Client
	topics    mqtt.Topics
	door      door.Actuator
	indicator indicator.Indicator
	buzzer    buzzer.Buzzer
	light     light.Sensor
	manual    *light.Manual
	bell      doorbell.Source
	pipe      *eventpipe.EventPipe
	now       func() time.Time
}

// eventMessage is the MQTT payload of one controller event.
type eventMessage struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newApp(cfg *Config) *App {
	return &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		topics: mqtt.Topics{ClientID: cfg.ClientID},
		now:    time.Now,
	}
}

func run(ctx context.Context, cfg *Config, holdOpen bool) error {
	app := newApp(cfg)
	app.log.Infow("godoor starting", "build", myBuild, "client_id", cfg.ClientID)
	defer app.release()

	if err := app.initHardware(); err != nil {
		return err
	}

	app.ctrl = controller.New(controller.Hardware{
		Door:      app.door,
		Indicator: app.indicator,
		Buzzer:    app.buzzer,
		Light:     app.light,
	}, app, controller.Options{Cycle: cfg.Cycle()})

	var err error
	app.bell, err = doorbell.New(cfg.Doorbell, app.ctrl.Doorbell())
	if err != nil {
		return fmt.Errorf("init doorbell: %w", err)
	}

	app.channel, err = comm.Open(cfg.Serial)
	if err != nil {
		return fmt.Errorf("init command channel: %w", err)
	}

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    app.onMQTTConnect,
		OnDisconnect: app.onMQTTDisconnect,
		OnMessage:    app.onMQTTMessage,
	})
	if err != nil {
		return fmt.Errorf("init MQTT: %w", err)
	}

	app.pipe, err = eventpipe.New(cfg.EventPipe, eventpipe.Handlers{
		OnCommand: app.submit,
		OnBell:    app.ctrl.Doorbell().Raise,
		OnLight:   app.setLight,
	})
	if err != nil {
		return fmt.Errorf("init event pipe: %w", err)
	}

	if holdOpen {
		app.submit(string(controller.CmdOpenDoor))
	}

	go func() {
		if err := app.mqtt.Connect(); err != nil {
			app.log.Warnw("MQTT connect failed", "error", err)
		}
	}()
	go app.commandListener()
	go app.pingSender(ctx)
	if app.pipe != nil {
		go app.pipe.Start()
	}

	err = app.ctrl.Run(ctx)
	app.log.Info("shutting down")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *App) initHardware() error {
	var err error

	app.indicator, err = indicator.New(app.cfg.Indicator)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}

	app.door, err = door.New(app.cfg.Door)
	if err != nil {
		return fmt.Errorf("init door: %w", err)
	}

	app.buzzer, err = buzzer.New(app.cfg.Buzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}

	app.light, err = light.New(app.cfg.Light)
	if err != nil {
		return fmt.Errorf("init light sensor: %w", err)
	}
	if m, ok := app.light.(*light.Manual); ok {
		app.manual = m
	}
	return nil
}

// release frees everything that was initialised, in reverse order.
func (app *App) release() {
	if app.pipe != nil {
		if err := app.pipe.Close(); err != nil {
			app.log.Warnw("close event pipe", "error", err)
		}
	}
	if app.mqtt != nil {
		app.mqtt.Disconnect()
	}
	if app.channel != nil {
		app.channel.Close()
	}
	if app.bell != nil {
		if err := app.bell.Release(); err != nil {
			app.log.Warnw("release doorbell", "error", err)
		}
	}
	if c, ok := app.light.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.log.Warnw("close light sensor", "error", err)
		}
	}
	if app.buzzer != nil {
		app.buzzer.Release()
	}
	if app.door != nil {
		app.door.Release()
	}
	if app.indicator != nil {
		app.indicator.Shutdown()
		app.indicator.Release()
	}
	app.log.Info("shutdown complete")
}

// Report implements controller.Reporter. Events go to the command channel
// as status lines and to MQTT as JSON.
func (app *App) Report(evt controller.Event) {
	if app.channel != nil {
		if err := app.channel.WriteEvent(evt.Message, evt.Code); err != nil && !errors.Is(err, comm.ErrClosed) {
			app.log.Warnw("write status line", "error", err)
		}
	}

	if app.mqtt == nil || !app.mqtt.IsEnabled() {
		return
	}
	payload, err := app.eventPayload(evt)
	if err != nil {
		app.log.Warnw("encode event", "error", err)
		return
	}
	app.mqtt.Publish(app.topics.Event(), payload)
}

func (app *App) eventPayload(evt controller.Event) ([]byte, error) {
	return json.Marshal(eventMessage{
		ID:      uuid.New().String(),
		Kind:    evt.Kind.String(),
		Code:    evt.Code,
		Message: evt.Message,
		Time:    app.now().UTC(),
	})
}

// submit queues a command line. A full inbox drops the line; the
// controller logs it.
func (app *App) submit(line string) {
	app.ctrl.Submit(line)
}

func (app *App) setLight(level int) {
	if app.manual == nil {
		app.log.Debugw("light level ignored, sensor is not manual", "level", level)
		return
	}
	app.manual.Set(level)
}

func (app *App) commandListener() {
	err := app.channel.Listen(app.submit)
	switch {
	case errors.Is(err, comm.ErrClosed):
	case errors.Is(err, io.EOF):
		app.log.Info("command channel reached end of input")
	default:
		app.log.Warnw("command channel failed", "error", err)
	}
}

func (app *App) onMQTTConnect() {
	for _, topic := range []string{app.topics.Command(), app.topics.Light()} {
		if err := app.mqtt.Subscribe(topic); err != nil {
			app.log.Warnw("subscribe failed", "topic", topic, "error", err)
		}
	}
}

func (app *App) onMQTTDisconnect() {
	app.log.Warn("MQTT disconnected, remote commands unavailable until reconnect")
}

func (app *App) onMQTTMessage(topic string, payload []byte) {
	switch topic {
	case app.topics.Command():
		line, member, err := decodeRemoteCommand(app.cfg.CommandSecret, payload, app.now())
		if err != nil {
			app.log.Warnw("remote command rejected", "error", err)
			return
		}
		app.log.Infow("remote command", "line", line, "member", member)
		app.submit(line)

	case app.topics.Light():
		level, err := strconv.Atoi(strings.TrimSpace(string(payload)))
		if err != nil {
			app.log.Warnw("bad light level", "payload", string(payload), "error", err)
			return
		}
		app.setLight(level)
	}
}

func (app *App) pingSender(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.mqtt.Publish(app.topics.Ping(), []byte(`{"status":"ok"}`))
		}
	}
}
