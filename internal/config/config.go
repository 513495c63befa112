// SPDX-License-Identifier: EPL-2.0

// Package config loads the audxfade settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audxfade/crossfade"
	"github.com/ik5/audxfade/fadecfg"
	"github.com/ik5/audxfade/stream"
)

// Crossfade length bounds, in seconds.
const (
	MinLength     = 1
	MaxLength     = 10
	DefaultLength = 5
)

// Environment overrides.
const (
	EnvProxyHost = "AUDXFADE_PROXY_HOST"
	EnvProxyPort = "AUDXFADE_PROXY_PORT"
	EnvProxyUser = "AUDXFADE_PROXY_USER"
	EnvProxyPass = "AUDXFADE_PROXY_PASS"
	EnvLogLevel  = "AUDXFADE_LOG_LEVEL"
)

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Crossfade CrossfadeConfig `yaml:"crossfade"`

	// Fades holds the records that differ from fadecfg.Default, keyed by
	// event ("fc_xfade", ...).
	Fades               map[string]fadecfg.FadeConfig `yaml:"fades"`
	MixSizeAuto         bool                          `yaml:"mix_size_auto"`
	MixSizeMs           int                           `yaml:"mix_size_ms"`
	SongchangeTimeoutMs int                           `yaml:"songchange_timeout_ms"`
	Gap                 GapConfig                     `yaml:"gap"`

	Proxy  ProxyConfig  `yaml:"proxy"`
	Stream StreamConfig `yaml:"stream"`
	Render RenderConfig `yaml:"render"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type CrossfadeConfig struct {
	Length int `yaml:"length"` // seconds
}

type GapConfig struct {
	LeadEnable  bool `yaml:"lead_enable"`
	LeadLenMs   int  `yaml:"lead_len_ms"`
	TrailEnable bool `yaml:"trail_enable"`
	TrailLenMs  int  `yaml:"trail_len_ms"`
	TrailLocked bool `yaml:"trail_locked"`
}

type ProxyConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	AuthEnabled bool   `yaml:"auth_enabled"`
	User        string `yaml:"user"`
	Pass        string `yaml:"pass"`
}

type StreamConfig struct {
	BufferSize  int    `yaml:"buffer_size"`
	RetryWaitMs int    `yaml:"retry_wait_ms"`
	UserAgent   string `yaml:"user_agent"`
}

type RenderConfig struct {
	Rate     int  `yaml:"rate"`
	Channels int  `yaml:"channels"`
	Conform  bool `yaml:"conform"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	fc := fadecfg.Default()

	return &Config{
		Log:                 LogConfig{Level: "info"},
		Crossfade:           CrossfadeConfig{Length: DefaultLength},
		Fades:               map[string]fadecfg.FadeConfig{},
		MixSizeAuto:         fc.MixSizeAuto,
		MixSizeMs:           fc.MixSizeMs,
		SongchangeTimeoutMs: fc.SongchangeTimeoutMs,
		Gap: GapConfig{
			LeadEnable:  fc.GapLeadEnable,
			LeadLenMs:   fc.GapLeadLenMs,
			TrailEnable: fc.GapTrailEnable,
			TrailLenMs:  fc.GapTrailLenMs,
			TrailLocked: fc.GapTrailLocked,
		},
		Proxy: ProxyConfig{Port: 8080},
		Stream: StreamConfig{
			BufferSize:  stream.DefaultBufferSize,
			RetryWaitMs: int(stream.DefaultRetryWait / time.Millisecond),
			UserAgent:   stream.DefaultUserAgent,
		},
		Render: RenderConfig{Conform: true},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment overrides. An empty path skips the file. A .env file in the
// working directory is loaded when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}

		if err := cfg.parse(data); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %w", ErrRead, err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	cfg.normalize()

	return cfg, nil
}

func (c *Config) parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	for key := range c.Fades {
		if _, err := fadecfg.ParseEvent(key); err != nil {
			return fmt.Errorf("%w: fades: %w", ErrParse, err)
		}
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrLogLevel, c.Log.Level)
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvProxyHost); v != "" {
		c.Proxy.Host = v
		c.Proxy.Enabled = true
	}

	if v := getenv(EnvProxyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: %s=%q", ErrProxyPort, EnvProxyPort, v)
		}
		c.Proxy.Port = port
	}

	if v := getenv(EnvProxyUser); v != "" {
		c.Proxy.User = v
		c.Proxy.AuthEnabled = true
	}

	if v := getenv(EnvProxyPass); v != "" {
		c.Proxy.Pass = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		if _, err := logrus.ParseLevel(v); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrLogLevel, EnvLogLevel, v)
		}
		c.Log.Level = v
	}

	return nil
}

func (c *Config) normalize() {
	c.Crossfade.Length = min(max(c.Crossfade.Length, MinLength), MaxLength)

	if c.Fades == nil {
		c.Fades = map[string]fadecfg.FadeConfig{}
	}
}

// SetLength overrides the crossfade length, clamped like the file value.
func (c *Config) SetLength(seconds int) {
	c.Crossfade.Length = seconds
	c.normalize()
}

// FadeConfig returns the resolver settings: the stock records with the
// file's records laid over them.
func (c *Config) FadeConfig() fadecfg.Config {
	fc := fadecfg.Default()

	for key, rec := range c.Fades {
		e, err := fadecfg.ParseEvent(key)
		if err != nil {
			continue
		}
		fc.Fades[e] = rec
	}

	fc.MixSizeAuto = c.MixSizeAuto
	fc.MixSizeMs = c.MixSizeMs
	fc.SongchangeTimeoutMs = c.SongchangeTimeoutMs
	fc.GapLeadEnable = c.Gap.LeadEnable
	fc.GapLeadLenMs = c.Gap.LeadLenMs
	fc.GapTrailEnable = c.Gap.TrailEnable
	fc.GapTrailLenMs = c.Gap.TrailLenMs
	fc.GapTrailLocked = c.Gap.TrailLocked

	return fc
}

// Engine returns the crossfade settings. The window is crossfade.length;
// the ramp end volumes come from the fc_xfade record.
func (c *Config) Engine() crossfade.Config {
	fc := c.FadeConfig()
	ec := crossfade.FromTransition(fc.Resolve(fadecfg.EventXFade))
	ec.Length = time.Duration(c.Crossfade.Length) * time.Second

	return ec
}

// Preallocate returns the mixing buffer size in samples for the given
// output format, from the resolver's mix size.
func (c *Config) Preallocate(rate, channels int) int {
	fc := c.FadeConfig()
	return fc.MixSize() * rate / 1000 * channels
}

// StreamOptions returns the options for network inputs.
func (c *Config) StreamOptions(log logrus.FieldLogger) stream.Options {
	return stream.Options{
		BufferSize: c.Stream.BufferSize,
		UserAgent:  c.Stream.UserAgent,
		RetryWait:  time.Duration(c.Stream.RetryWaitMs) * time.Millisecond,
		Proxy: stream.ProxyConfig{
			Enabled:     c.Proxy.Enabled,
			Host:        c.Proxy.Host,
			Port:        c.Proxy.Port,
			AuthEnabled: c.Proxy.AuthEnabled,
			User:        c.Proxy.User,
			Pass:        c.Proxy.Pass,
		},
		Logger: log,
	}
}

// Logger configures l from the log section.
func (c *Config) Logger(l *logrus.Logger) {
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}

	if c.Log.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
		return
	}

	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
