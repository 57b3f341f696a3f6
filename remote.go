package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CommandWindow is how far a signed command's timestamp may drift from now.
const CommandWindow = 5 * time.Minute

var (
	errBadSignature = errors.New("signature verification failed")
	errStale        = errors.New("command timestamp out of range")
)

// CommandRequest is a signed remote command.
type CommandRequest struct {
	Command   string `json:"command"`
	Member    string `json:"member"`
	Timestamp uint64 `json:"timestamp"`
	Signature string `json:"signature"`
}

// decodeRemoteCommand turns an MQTT command payload into a command line.
// Without a secret the payload is the command line itself. With a secret it
// must be a CommandRequest signed with that secret and recent enough.
func decodeRemoteCommand(secret string, payload []byte, now time.Time) (line, member string, err error) {
	if secret == "" {
		return string(payload), "", nil
	}

	var req CommandRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return "", "", fmt.Errorf("decode command request: %w", err)
	}

	if err := req.verify(secret); err != nil {
		return "", "", err
	}

	ts := time.Unix(int64(req.Timestamp), 0)
	if now.Before(ts.Add(-CommandWindow)) || now.After(ts.Add(CommandWindow)) {
		return "", "", errStale
	}

	return req.Command, req.Member, nil
}

// mac is the HMAC-SHA256 of member, command and the big-endian timestamp.
func (r CommandRequest) mac(secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(r.Member))
	h.Write([]byte(r.Command))
	_ = binary.Write(h, binary.BigEndian, r.Timestamp)
	return h.Sum(nil)
}

// sign fills Signature (hex) using the base64 encoded secret.
func (r *CommandRequest) sign(base64Secret string) error {
	secret, err := decodeSecret(base64Secret)
	if err != nil {
		return err
	}
	r.Signature = hex.EncodeToString(r.mac(secret))
	return nil
}

// verify accepts a signature in hex or base64.
func (r CommandRequest) verify(base64Secret string) error {
	secret, err := decodeSecret(base64Secret)
	if err != nil {
		return err
	}

	want := r.mac(secret)
	for _, decode := range signatureDecoders {
		if got, err := decode(r.Signature); err == nil && hmac.Equal(got, want) {
			return nil
		}
	}
	return errBadSignature
}

var signatureDecoders = []func(string) ([]byte, error){
	hex.DecodeString,
	base64.StdEncoding.DecodeString,
}

func decodeSecret(base64Secret string) ([]byte, error) {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("secret cannot be empty")
	}
	return secret, nil
}
