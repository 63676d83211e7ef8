package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/mqttwire"
)

func writeCapture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunFile(t *testing.T) {
	path := writeCapture(t, captureStream(t, &mqttwire.PingreqPacket{}, &mqttwire.DisconnectPacket{}))

	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"-log-level", "none", path}, &out))
	assert.Contains(t, out.String(), "PINGREQ")
	assert.Contains(t, out.String(), "DISCONNECT")
}

func TestRunDecodeFailureExitCode(t *testing.T) {
	stream := append(captureStream(t, &mqttwire.PingreqPacket{}), 0x30, 0x05, 0x00)
	path := writeCapture(t, stream)

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"-log-level", "none", path}, &out))
	assert.Contains(t, out.String(), "PINGREQ")
}

func TestRunMissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "missing.bin")}, &out))
	assert.Zero(t, out.Len())
}

func TestRunMaxSizeOutOfRange(t *testing.T) {
	path := writeCapture(t, captureStream(t, &mqttwire.PingreqPacket{}))

	for _, size := range []string{"268435456", "4294967396"} {
		var out bytes.Buffer
		assert.Equal(t, 2, run([]string{"-max-size", size, path}, &out), size)
		assert.Zero(t, out.Len())
	}

	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"-log-level", "none", "-max-size", "268435455", path}, &out))
}

func TestRunBadFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run([]string{"-format", "json"}, &out))
	assert.Equal(t, 2, run([]string{"-log-level", "loud"}, &out))
	assert.Equal(t, 2, run([]string{"-no-such-flag"}, &out))
}
