package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IlikeChooros/go-uttt/pkg/search"
)

const (
	ConfigServerHost    = "server-host"
	ConfigServerPort    = "server-port"
	ConfigMovetime      = "movetime"
	ConfigDepth         = "depth"
	ConfigDialAttempts  = "dial-attempts"
	ConfigLogLevel      = "log-level"
	ConfigLogPretty     = "log-pretty"
	ConfigConfigFile    = "config-file"
	ConfigArenaGames    = "arena-games"
	ConfigArenaWorkers  = "arena-workers"
	ConfigArenaMovetime = "arena-movetime"

	EnvPrefix = "UTTT"
)

// Settings of the client and the arena, read from flags, UTTT_* environment
// variables and an optional config file, in that order of precedence
type Config struct {
	*viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetDefault(ConfigServerHost, "localhost")
	v.SetDefault(ConfigServerPort, 8888)
	v.SetDefault(ConfigMovetime, search.DefaultMovetimeLimit)
	v.SetDefault(ConfigDepth, search.MaxDepth)
	v.SetDefault(ConfigDialAttempts, 5)
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigLogPretty, true)
	v.SetDefault(ConfigArenaGames, 20)
	v.SetDefault(ConfigArenaWorkers, 2)
	v.SetDefault(ConfigArenaMovetime, 200)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{Viper: v}
}

// Parse the command line arguments, positional arguments are kept in 'Args'
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("uttt", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String(ConfigServerHost, "localhost", "host of the game server")
	fs.Int(ConfigServerPort, 8888, "port of the game server")
	fs.Int(ConfigMovetime, search.DefaultMovetimeLimit, "time budget per move in milliseconds, non-positive disables it")
	fs.Int(ConfigDepth, search.MaxDepth, "search depth in plies, capped at the compiled-in maximum")
	fs.Int(ConfigDialAttempts, 5, "number of attempts to connect to the server")
	fs.String(ConfigLogLevel, "info", "log level: debug, info or disabled")
	fs.Bool(ConfigLogPretty, true, "human readable console logs")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, json or toml)")
	fs.Int(ConfigArenaGames, 20, "number of games played in the arena")
	fs.Int(ConfigArenaWorkers, 2, "number of games played concurrently in the arena")
	fs.Int(ConfigArenaMovetime, 200, "time budget per move of the arena engines, in milliseconds")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.Set("args", fs.Args())

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Positional arguments left after parsing the flags
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}

// Address of the game server, the first positional argument overrides the host
func (c *Config) ServerAddr() string {
	host := c.GetString(ConfigServerHost)
	if args := c.Args(); len(args) > 0 && args[0] != "" {
		host = args[0]
	}
	return net.JoinHostPort(host, strconv.Itoa(c.GetInt(ConfigServerPort)))
}

// Search limits of the client engine
func (c *Config) Limits() *search.Limits {
	return search.DefaultLimits().
		SetDepth(c.GetInt(ConfigDepth)).
		SetMovetime(c.GetInt(ConfigMovetime))
}

func (c *Config) Movetime() time.Duration {
	return time.Duration(c.GetInt(ConfigMovetime)) * time.Millisecond
}

var ErrLogLevel = errors.New("unknown log level")

// Set the global log level and build the logger, the way the binaries log
func (c *Config) Logger() (zerolog.Logger, error) {
	var level zerolog.Level
	switch ll := c.GetString(ConfigLogLevel); ll {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "disabled":
		level = zerolog.Disabled
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrLogLevel, ll)
	}

	zerolog.SetGlobalLevel(level)
	var out io.Writer = os.Stderr
	if c.GetBool(ConfigLogPretty) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(level), nil
}
