package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "c2VjcmV0LWtleS1mb3ItdGVzdHM=" // "secret-key-for-tests"

func signedPayload(t *testing.T, command, member string, ts time.Time, useHex bool) []byte {
	t.Helper()

	req := CommandRequest{
		Command:   command,
		Member:    member,
		Timestamp: uint64(ts.Unix()),
	}
	require.NoError(t, req.sign(testSecret))
	if !useHex {
		raw, err := hex.DecodeString(req.Signature)
		require.NoError(t, err)
		req.Signature = base64.StdEncoding.EncodeToString(raw)
	}

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	return payload
}

func TestDecodeRemoteCommandUnsigned(t *testing.T) {
	line, member, err := decodeRemoteCommand("", []byte("F250"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "F250", line)
	assert.Empty(t, member)
}

func TestDecodeRemoteCommandSigned(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	for _, useHex := range []bool{true, false} {
		line, member, err := decodeRemoteCommand(testSecret, signedPayload(t, "E", "alice", now, useHex), now)
		require.NoError(t, err)
		assert.Equal(t, "E", line)
		assert.Equal(t, "alice", member)
	}
}

func TestDecodeRemoteCommandWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	_, _, err := decodeRemoteCommand(testSecret, signedPayload(t, "B", "bob", now.Add(-4*time.Minute), true), now)
	assert.NoError(t, err)

	_, _, err = decodeRemoteCommand(testSecret, signedPayload(t, "B", "bob", now.Add(-6*time.Minute), true), now)
	assert.ErrorIs(t, err, errStale)

	_, _, err = decodeRemoteCommand(testSecret, signedPayload(t, "B", "bob", now.Add(6*time.Minute), true), now)
	assert.ErrorIs(t, err, errStale)
}

func TestDecodeRemoteCommandTampered(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	var req CommandRequest
	require.NoError(t, json.Unmarshal(signedPayload(t, "A", "carol", now, true), &req))
	req.Command = "B"
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	_, _, err = decodeRemoteCommand(testSecret, payload, now)
	assert.ErrorIs(t, err, errBadSignature)
}

func TestDecodeRemoteCommandBadInput(t *testing.T) {
	_, _, err := decodeRemoteCommand(testSecret, []byte("B"), time.Now())
	assert.ErrorContains(t, err, "decode command request")

	_, _, err = decodeRemoteCommand("not base64!", []byte(`{"command":"B"}`), time.Now())
	assert.ErrorContains(t, err, "invalid base64 secret")
}

func TestCommandSignatureKnownVector(t *testing.T) {
	req := CommandRequest{Command: "E", Member: "alice", Timestamp: 1_700_000_000}
	require.NoError(t, req.sign(testSecret))

	// HMAC-SHA256("secret-key-for-tests", "alice" || "E" || be64(1700000000))
	mac := hmac.New(sha256.New, []byte("secret-key-for-tests"))
	mac.Write([]byte("aliceE"))
	mac.Write([]byte{0, 0, 0, 0, 0x65, 0x53, 0xf1, 0x00})
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), req.Signature)

	assert.ErrorContains(t, (&CommandRequest{}).sign(""), "secret cannot be empty")
}
