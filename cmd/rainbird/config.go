package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/go-rainbird/rainbird"
)

// settings holds the controller connection settings of the CLI.
type settings struct {
	Host       string
	Password   string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Debug      bool
}

func defaultSettings() settings {
	return settings{
		Timeout:    rainbird.DefaultTimeout,
		RetryCount: rainbird.DefaultRetryCount,
		RetryDelay: rainbird.DefaultRetryDelay,
	}
}

type fileConfig struct {
	Host       string `toml:"host"`
	Password   string `toml:"password"`
	Timeout    string `toml:"timeout"`
	TimeoutMS  int64  `toml:"timeout_ms"`
	RetryCount int    `toml:"retry_count"`
	RetryDelay string `toml:"retry_delay"`
	Debug      bool   `toml:"debug"`
}

// loadSettings overlays the keys defined in the TOML file at path on s.
func loadSettings(path string, s settings) (settings, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return settings{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("host") {
		s.Host = strings.TrimSpace(raw.Host)
	}

	if meta.IsDefined("password") {
		s.Password = raw.Password
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return settings{}, fmt.Errorf("parse timeout: %w", err)
		}
		s.Timeout = d
	}

	if meta.IsDefined("timeout_ms") {
		s.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}

	if meta.IsDefined("retry_count") {
		s.RetryCount = raw.RetryCount
	}

	if meta.IsDefined("retry_delay") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryDelay))
		if err != nil {
			return settings{}, fmt.Errorf("parse retry_delay: %w", err)
		}
		s.RetryDelay = d
	}

	if meta.IsDefined("debug") {
		s.Debug = raw.Debug
	}

	return s, nil
}

// clientConfig validates s and returns the client configuration it describes.
func (s settings) clientConfig() (*rainbird.ClientConfig, error) {
	if s.Host == "" {
		return nil, errors.New("controller host is not set, use --host or the host config key")
	}
	if s.Password == "" {
		return nil, errors.New("controller password is not set, use --password or the password config key")
	}

	return rainbird.NewClientConfig(s.Host, s.Password,
		rainbird.WithTimeout(s.Timeout),
		rainbird.WithRetryCount(s.RetryCount),
		rainbird.WithRetryDelay(s.RetryDelay),
		rainbird.WithDebug(s.Debug),
	)
}
