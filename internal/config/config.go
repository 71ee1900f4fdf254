// Package config assembles worker settings from the environment and
// command-line flags. Environment values become flag defaults, so an
// explicit flag always wins.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the worker settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	// PopTimeout bounds each blocking wait on the queue.
	PopTimeout time.Duration
	// RunFor stops the worker after this long; zero runs until interrupted.
	RunFor        time.Duration
	Workers       int
	StatsInterval time.Duration

	SampleRate int
	Channels   int

	Verbose      bool
	LogJSON      bool
	ShowVersion  bool
	ForceGeneric bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:          "localhost",
		Port:          6379,
		PopTimeout:    5 * time.Second,
		Workers:       1,
		StatsInterval: 30 * time.Second,
		SampleRate:    44100,
		Channels:      1,
	}
}

// Load builds a Config from getenv and args (without the program name).
// Usage and parse errors are written to output.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (Config, error) {
	cfg, err := FromEnv(getenv)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	timeoutSec := int(cfg.PopTimeout / time.Second)
	durationMin := 0

	cfg.RedisFlags(fs)
	fs.IntVar(&timeoutSec, "timeout", timeoutSec, "queue poll timeout in seconds")
	fs.IntVar(&durationMin, "duration", durationMin, "run duration in minutes (0 = unlimited)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent workers")
	fs.DurationVar(&cfg.StatsInterval, "stats-interval", cfg.StatsInterval, "interval between statistics log lines")
	fs.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "input sample rate when job metadata has none")
	fs.IntVar(&cfg.Channels, "channels", cfg.Channels, "input channel count when job metadata has none")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "log in JSON format")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")
	fs.BoolVar(&cfg.ForceGeneric, "generic", false, "disable SIMD kernels in the analysis path")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("config: unexpected arguments %q", fs.Args())
	}

	cfg.PopTimeout = time.Duration(timeoutSec) * time.Second
	cfg.RunFor = time.Duration(durationMin) * time.Minute

	if durationMin < 0 {
		return Config{}, errors.New("config: duration must not be negative")
	}

	return cfg, cfg.Validate()
}

// FromEnv returns the built-in settings overridden by the environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RedisFlags registers the connection flags on fs with c's current values
// as defaults.
func (c *Config) RedisFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "Redis host")
	fs.IntVar(&c.Port, "port", c.Port, "Redis port")
	fs.StringVar(&c.Password, "auth", c.Password, "Redis password")
	fs.IntVar(&c.DB, "db", c.DB, "Redis database number")
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if raw := getenv("REDIS_URL"); raw != "" {
		opt, err := redis.ParseURL(raw)
		if err != nil {
			return fmt.Errorf("config: REDIS_URL: %w", err)
		}

		host, port, err := net.SplitHostPort(opt.Addr)
		if err != nil {
			return fmt.Errorf("config: REDIS_URL address: %w", err)
		}

		c.Host = host
		c.Password = opt.Password
		c.DB = opt.DB

		if c.Port, err = strconv.Atoi(port); err != nil {
			return fmt.Errorf("config: REDIS_URL port: %w", err)
		}
	}

	if v := getenv("REDIS_HOST"); v != "" {
		c.Host = v
	}

	if err := envInt(getenv, "REDIS_PORT", &c.Port); err != nil {
		return err
	}

	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Password = v
	}

	if v := getenv("REDIS_PASS"); v != "" {
		c.Password = v
	}

	if err := envInt(getenv, "REDIS_DB", &c.DB); err != nil {
		return err
	}

	return envInt(getenv, "FXWORKER_WORKERS", &c.Workers)
}

func envInt(getenv func(string) string, key string, dst *int) error {
	v := getenv(key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}

	*dst = n

	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("config: empty Redis host")
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("config: port %d out of range", c.Port)
	case c.DB < 0:
		return fmt.Errorf("config: negative database %d", c.DB)
	case c.PopTimeout < time.Second:
		return fmt.Errorf("config: timeout %v below one second", c.PopTimeout)
	case c.RunFor < 0:
		return errors.New("config: duration must not be negative")
	case c.Workers < 1:
		return fmt.Errorf("config: workers %d, need at least one", c.Workers)
	case c.StatsInterval <= 0:
		return fmt.Errorf("config: stats interval %v must be positive", c.StatsInterval)
	case c.SampleRate <= 0 || c.Channels <= 0:
		return fmt.Errorf("config: input format %d Hz x %d", c.SampleRate, c.Channels)
	}

	return nil
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RedisOptions returns the go-redis connection options.
func (c Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.Addr(),
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.Workers + 1,
	}
}
