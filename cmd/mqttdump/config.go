package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vitalvas/mqttwire"
)

const (
	formatText    = "text"
	formatMsgpack = "msgpack"
)

type dumpConfig struct {
	MaxPacketSize uint32
	StrictFlags   bool
	LogLevel      mqttwire.LogLevel
	Format        string
	Hex           bool
	Stats         bool
}

func defaultDumpConfig() dumpConfig {
	return dumpConfig{
		MaxPacketSize: 256 * 1024,
		LogLevel:      mqttwire.LogLevelInfo,
		Format:        formatText,
	}
}

type fileConfig struct {
	MaxPacketSize int64  `toml:"max_packet_size"`
	StrictFlags   bool   `toml:"strict_flags"`
	LogLevel      string `toml:"log_level"`
	Format        string `toml:"format"`
	Hex           bool   `toml:"hex"`
	Stats         bool   `toml:"stats"`
}

func loadDumpConfig(path string) (dumpConfig, error) {
	cfg := defaultDumpConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return dumpConfig{}, fmt.Errorf("load mqttdump config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return dumpConfig{}, fmt.Errorf("load mqttdump config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_packet_size") {
		if raw.MaxPacketSize < 0 {
			return dumpConfig{}, fmt.Errorf("max_packet_size %d out of range", raw.MaxPacketSize)
		}
		size, err := parseMaxSize(uint64(raw.MaxPacketSize))
		if err != nil {
			return dumpConfig{}, fmt.Errorf("max_packet_size %w", err)
		}
		cfg.MaxPacketSize = size
	}

	if meta.IsDefined("strict_flags") {
		cfg.StrictFlags = raw.StrictFlags
	}

	if meta.IsDefined("log_level") {
		level, ok := mqttwire.ParseLogLevel(strings.TrimSpace(raw.LogLevel))
		if !ok {
			return dumpConfig{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("format") {
		format, err := parseFormat(raw.Format)
		if err != nil {
			return dumpConfig{}, err
		}
		cfg.Format = format
	}

	if meta.IsDefined("hex") {
		cfg.Hex = raw.Hex
	}

	if meta.IsDefined("stats") {
		cfg.Stats = raw.Stats
	}

	return cfg, nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatText, formatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("parse format: unknown format %q", s)
	}
}

// parseMaxSize checks a packet size limit against the largest remaining
// length the wire format can carry.
func parseMaxSize(n uint64) (uint32, error) {
	if n > mqttwire.MaxRemainingLength {
		return 0, fmt.Errorf("%d out of range", n)
	}
	return uint32(n), nil
}
