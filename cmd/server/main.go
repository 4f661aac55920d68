package main

import (
	"context"
	"log"
	"time"

	httpadapter "thunderpunch/internal/adapter/http"
	metricsinmem "thunderpunch/internal/adapter/metrics/inmemory"
	gormrepo "thunderpunch/internal/adapter/repo/gorm"
	"thunderpunch/internal/adapter/repo/memory"
	tuningfile "thunderpunch/internal/adapter/tuning/file"
	"thunderpunch/internal/adapter/world/sandbox"
	"thunderpunch/internal/app/attack"
	"thunderpunch/internal/app/explosive"
	"thunderpunch/internal/app/journal"
	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/raycast"
	"thunderpunch/internal/app/scheduler"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
	"thunderpunch/internal/platform/config"
	"thunderpunch/internal/platform/otel"
	"thunderpunch/internal/random"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const serviceName = "thunderpunch"

type serverConfig struct {
	Addr            string        `env:"THUNDERPUNCH_ADDR" envDefault:":8080"`
	DSN             string        `env:"THUNDERPUNCH_DB_DSN"`
	DBMaxOpenConns  int           `env:"THUNDERPUNCH_DB_MAX_OPEN_CONNS" envDefault:"10"`
	TuningFile      string        `env:"THUNDERPUNCH_TUNING_FILE"`
	Seed            uint64        `env:"THUNDERPUNCH_SEED"`
	JournalCapacity int           `env:"THUNDERPUNCH_JOURNAL_CAPACITY" envDefault:"256"`
	ShutdownGrace   time.Duration `env:"THUNDERPUNCH_SHUTDOWN_GRACE" envDefault:"5s"`
	ClientSide      bool          `env:"THUNDERPUNCH_CLIENT_SIDE"`
	OTel            otel.Config
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := log.Default()
	ctx := context.Background()

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTel)
	if err != nil {
		log.Fatalf("otel setup: %v", err)
	}

	outcomes, err := buildOutcomeStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	tuning, closeTuning, err := buildTuning(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	rnd := buildRandom(cfg.Seed)
	kpiRecorder := metricsinmem.NewRecorder()
	journalUC := journal.UseCase{Repo: outcomes.Repo, Tx: outcomes.Tx, Retain: cfg.JournalCapacity}
	spawns := scheduler.New(scheduler.Config{
		Random: rnd,
		Tuning: tuning,
		Logger: logger,
		Grace:  cfg.ShutdownGrace,
	})

	sandboxWorld := sandbox.New(sandbox.Config{ClientSide: cfg.ClientSide, Logger: logger})
	if err := seedWorld(sandboxWorld); err != nil {
		log.Fatalf("seed world: %v", err)
	}

	h := httpadapter.Handler{
		World: sandboxWorld,
		AttackUC: attack.UseCase{
			Random:  rnd,
			Tuning:  tuning,
			Spawns:  spawns,
			Journal: journalUC,
			Metrics: kpiRecorder,
			Logger:  logger,
		},
		ExplosiveUC: explosive.UseCase{
			Random:   rnd,
			Resolver: raycast.Resolver{},
			Journal:  journalUC,
			Metrics:  kpiRecorder,
			Logger:   logger,
		},
		JournalUC: journalUC,
		Scheduler: spawns,
		KPI:       kpiRecorder,
	}

	s := server.Default(
		server.WithHostPorts(cfg.Addr),
		server.WithExitWaitTime(cfg.ShutdownGrace),
	)
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if err := spawns.Shutdown(ctx); err != nil {
			logger.Printf("scheduler shutdown: %v", err)
		}
		if err := closeTuning(); err != nil {
			logger.Printf("close tuning watcher: %v", err)
		}
		if err := outcomes.Close(); err != nil {
			logger.Printf("close outcome store: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			logger.Printf("otel shutdown: %v", err)
		}
	})

	log.Printf("thunderpunch server listening on %s (demo player: %s)", cfg.Addr, demoPlayerID)
	s.Spin()
}

func loadConfig() (serverConfig, error) {
	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return serverConfig{}, err
	}
	return cfg, nil
}

type outcomeStore struct {
	Repo  ports.OutcomeRepository
	Tx    ports.TxManager
	Close func() error
}

// buildOutcomeStore picks postgres when a DSN is configured and the bounded
// in-memory store otherwise.
func buildOutcomeStore(ctx context.Context, cfg serverConfig) (outcomeStore, error) {
	if cfg.DSN == "" {
		return outcomeStore{
			Repo:  memory.NewOutcomeRepo(memory.NewStore(cfg.JournalCapacity)),
			Tx:    memory.TxManager{},
			Close: func() error { return nil },
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		return outcomeStore{}, err
	}
	if err := gormrepo.ConfigurePool(db, gormrepo.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	}); err != nil {
		_ = gormrepo.Close(db)
		return outcomeStore{}, err
	}
	applied, err := gormrepo.ApplyMigrations(ctx, db, gormrepo.Migrations())
	if err != nil {
		_ = gormrepo.Close(db)
		return outcomeStore{}, err
	}
	for _, name := range applied {
		log.Printf("applied migration %s", name)
	}
	return outcomeStore{
		Repo:  gormrepo.NewOutcomeRepo(db),
		Tx:    gormrepo.NewTxManager(db),
		Close: func() error { return gormrepo.Close(db) },
	}, nil
}

// buildTuning loads the tuning file when one is configured and keeps it
// reloaded on change.
func buildTuning(cfg serverConfig, logger *log.Logger) (*tuningfile.Store, func() error, error) {
	if cfg.TuningFile == "" {
		return tuningfile.NewStore(combat.DefaultTuning()), func() error { return nil }, nil
	}

	t, err := tuningfile.Load(cfg.TuningFile)
	if err != nil {
		return nil, nil, err
	}
	store := tuningfile.NewStore(t)
	w, err := tuningfile.Watch(cfg.TuningFile, store, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, w.Close, nil
}

func buildRandom(seed uint64) ports.Random {
	if seed != 0 {
		return random.NewSeeded(seed)
	}
	return random.New()
}

const (
	demoPlayerID = "demo-player"
	demoZombieID = "demo-zombie"
)

func seedWorld(w *sandbox.World) error {
	if _, err := w.AddEntity(sandbox.Entity{
		ID:        demoPlayerID,
		Kind:      world.EntityPlayer,
		Position:  world.Vec3{0.5, float64(sandbox.DefaultGroundLevel), 0.5},
		HandEmpty: true,
		Attributes: map[world.AttributeKind]float64{
			world.AttributeAttackKnockback: 1,
		},
	}); err != nil {
		return err
	}
	_, err := w.AddEntity(sandbox.Entity{
		ID:       demoZombieID,
		Kind:     world.EntityZombie,
		Position: world.Vec3{0.5, float64(sandbox.DefaultGroundLevel), 3.5},
	})
	return err
}
