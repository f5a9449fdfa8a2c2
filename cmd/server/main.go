package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"go.uber.org/zap"

	weighteddice "github.com/karl5252/beastbazaar/internal/adapter/dice/weighted"
	"github.com/karl5252/beastbazaar/internal/adapter/eventlog"
	httpadapter "github.com/karl5252/beastbazaar/internal/adapter/http"
	metricsinmem "github.com/karl5252/beastbazaar/internal/adapter/metrics/inmemory"
	gormrepo "github.com/karl5252/beastbazaar/internal/adapter/repo/gorm"
	"github.com/karl5252/beastbazaar/internal/adapter/repo/memory"
	sqlitejournal "github.com/karl5252/beastbazaar/internal/adapter/repo/sqlite"
	"github.com/karl5252/beastbazaar/internal/adapter/ws"
	"github.com/karl5252/beastbazaar/internal/app/game"
	"github.com/karl5252/beastbazaar/internal/app/ports"
	"github.com/karl5252/beastbazaar/internal/app/replay"
	"github.com/karl5252/beastbazaar/internal/config"
	"github.com/karl5252/beastbazaar/internal/domain/engine"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Server, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}

	journal, closeJournal, err := buildJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	session := engine.New(rules, engine.WithLogger(logger.Named("engine")))
	for _, name := range cfg.Players {
		session.AddPlayer(name)
	}

	dice, err := weighteddice.ForDifficulty(rules, cfg.Difficulty, resolveSeed(cfg.Seed, time.Now))
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	hub := ws.NewHub(logger.Named("ws"), cfg.AllowOrigin)
	go hub.Run(ctx)
	sinks := ports.MultiSink{hub}
	if cfg.EventLogDir != "" {
		events := eventlog.NewWriter(cfg.EventLogDir, sessionID)
		defer func() { _ = events.Close() }()
		sinks = append(sinks, events)
	}

	kpi := metricsinmem.NewRecorder()
	ctrl, err := game.NewController(game.Config{
		SessionID:  sessionID,
		Difficulty: cfg.Difficulty,
		Session:    session,
		Dice:       dice,
		Sink:       sinks,
		Journal:    journal.Journal,
		TxManager:  journal.Tx,
		Metrics:    kpi,
		Logger:     logger.Named("game"),
	})
	if err != nil {
		return err
	}
	ctrl.Start(ctx)

	h := httpadapter.Handler{
		Game:        ctrl,
		ReplayUC:    replay.UseCase{Journal: journal.Journal},
		KPI:         kpi,
		Schemas:     httpadapter.MustLoadSchemas(),
		AllowOrigin: cfg.AllowOrigin,
	}

	wsServer := &http.Server{Addr: cfg.WSAddr, Handler: wsMux(hub), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ws listener failed", zap.Error(err))
		}
	}()

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	logger.Info("beastbazaar server listening",
		zap.String("addr", cfg.Addr),
		zap.String("ws_addr", cfg.WSAddr),
		zap.String("session_id", sessionID),
		zap.Strings("players", cfg.Players),
		zap.String("journal", cfg.Journal),
		zap.String("difficulty", cfg.Difficulty),
	)
	s.Spin()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return wsServer.Shutdown(shutdownCtx)
}

type journalDeps struct {
	Journal ports.Journal
	Tx      ports.TxManager
}

func buildJournal(ctx context.Context, cfg config.Server) (journalDeps, func(), error) {
	switch cfg.Journal {
	case config.JournalPostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return journalDeps{}, nil, err
		}
		if err := gormrepo.ApplyMigrations(ctx, db); err != nil {
			return journalDeps{}, nil, fmt.Errorf("migrate: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return journalDeps{Journal: gormrepo.NewJournalRepo(db), Tx: gormrepo.NewTxManager(db)}, closeDB, nil
	case config.JournalSQLite:
		j, err := sqlitejournal.Open(cfg.SQLitePath)
		if err != nil {
			return journalDeps{}, nil, err
		}
		return journalDeps{Journal: j}, func() { _ = j.Close() }, nil
	default:
		store := memory.NewStore()
		return journalDeps{Journal: memory.NewJournal(store), Tx: memory.NewTxManager(store)}, func() {}, nil
	}
}

func wsMux(hub *ws.Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	return mux
}

// resolveSeed uses the clock when no seed was configured.
func resolveSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(now().UnixNano())
}
