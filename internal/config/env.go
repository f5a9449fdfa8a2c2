package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

const (
	JournalMemory   = "memory"
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

// Server is the process configuration read from the environment.
type Server struct {
	Addr        string   `env:"BEASTBAZAAR_ADDR"          envDefault:":8080"`
	WSAddr      string   `env:"BEASTBAZAAR_WS_ADDR"       envDefault:":8081"`
	Players     []string `env:"BEASTBAZAAR_PLAYERS"       envDefault:"Player1,Player2" envSeparator:","`
	RulesPath   string   `env:"BEASTBAZAAR_RULES"`
	Difficulty  string   `env:"BEASTBAZAAR_DIFFICULTY"    envDefault:"easy"`
	Seed        uint64   `env:"BEASTBAZAAR_SEED"          envDefault:"0"`
	Journal     string   `env:"BEASTBAZAAR_JOURNAL"       envDefault:"memory"`
	DBDSN       string   `env:"BEASTBAZAAR_DB_DSN"`
	SQLitePath  string   `env:"BEASTBAZAAR_SQLITE_PATH"   envDefault:"data/journal.db"`
	EventLogDir string   `env:"BEASTBAZAAR_EVENT_LOG_DIR"`
	AllowOrigin string   `env:"BEASTBAZAAR_ALLOW_ORIGIN"  envDefault:"*"`
	LogLevel    string   `env:"LOG_LEVEL"                 envDefault:"info"`
	LogDev      bool     `env:"LOG_DEV"`
}

func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s *Server) normalize() {
	players := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}
	s.Players = players
	s.Journal = strings.ToLower(strings.TrimSpace(s.Journal))
	s.Difficulty = strings.ToLower(strings.TrimSpace(s.Difficulty))
	s.DBDSN = strings.TrimSpace(s.DBDSN)
}

func (s Server) Validate() error {
	if len(s.Players) == 0 {
		return fmt.Errorf("BEASTBAZAAR_PLAYERS: at least one player is required")
	}
	switch s.Journal {
	case JournalMemory:
	case JournalPostgres:
		if s.DBDSN == "" {
			return fmt.Errorf("BEASTBAZAAR_DB_DSN is required for the postgres journal")
		}
	case JournalSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("BEASTBAZAAR_SQLITE_PATH is required for the sqlite journal")
		}
	default:
		return fmt.Errorf("BEASTBAZAAR_JOURNAL: unknown journal %q", s.Journal)
	}
	if s.Difficulty != farm.DifficultyEasy && s.Difficulty != farm.DifficultyMedium {
		return fmt.Errorf("BEASTBAZAAR_DIFFICULTY: unknown difficulty %q", s.Difficulty)
	}
	return nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_DEV.
func (s Server) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	if s.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
