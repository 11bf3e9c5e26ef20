package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lore-ai/lore-ai/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string       `toml:"addr"`
	Log      Log          `toml:"log"`
	Postgres PGConfig     `toml:"postgres"`
	AI       srv.AIConfig `toml:"ai"`
	Session  Session      `toml:"session"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("LORE_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.AI.FromENV()
	c.Session.FromENV()
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("LORE_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

// Session 会话回收配置
type Session struct {
	TimeoutSeconds int `toml:"timeout_seconds"` // inactivity window before a session is reaped
}

func (s *Session) FromENV() {
	if raw := os.Getenv("LORE_SESSION_TIMEOUT_SECONDS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			s.TimeoutSeconds = v
		}
	}
}

const DEFAULT_SESSION_TIMEOUT_SECONDS = 300

func (s Session) Timeout() int {
	if s.TimeoutSeconds <= 0 {
		return DEFAULT_SESSION_TIMEOUT_SECONDS
	}
	return s.TimeoutSeconds
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("LORE_API_LOG_LEVEL")
	l.Path = os.Getenv("LORE_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
