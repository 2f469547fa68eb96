package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	"github.com/noah-isme/ssis-api/internal/seed"
	"github.com/noah-isme/ssis-api/internal/service"
	"github.com/noah-isme/ssis-api/pkg/config"
	"github.com/noah-isme/ssis-api/pkg/database"
	"github.com/noah-isme/ssis-api/pkg/logger"
)

func main() {
	var (
		fixturePath string
		migrate     bool
	)
	flag.StringVar(&fixturePath, "file", "internal/seed/testdata/sample.yaml", "Fixture file (.yaml, .yml, .toml or .json)")
	flag.BoolVar(&migrate, "migrate", true, "Apply pending migrations before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fixture, err := seed.Load(fixturePath)
	if err != nil {
		logr.Fatal("failed to load fixture", zap.String("file", fixturePath), zap.Error(err))
	}

	sqlDB, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer sqlDB.Close()

	if migrate {
		if err := database.Migrate(ctx, sqlDB, logr); err != nil {
			logr.Fatal("failed to migrate", zap.Error(err))
		}
	}

	dialect, err := querybuilder.DialectFor(sqlDB.DriverName())
	if err != nil {
		logr.Fatal("unsupported driver", zap.Error(err))
	}

	db := repository.NewDB(sqlDB, dialect)
	colleges := repository.NewCollegeRepository(db)
	programs := repository.NewProgramRepository(db)
	students := repository.NewStudentRepository(db)
	validate := service.NewValidator()

	seeder := seed.NewSeeder(
		service.NewCollegeService(colleges, programs, db, nil, validate, logr, service.UpdateOptions{}),
		service.NewProgramService(programs, colleges, students, db, nil, validate, logr, service.UpdateOptions{}),
		service.NewStudentService(students, programs, db, nil, validate, logr, service.UpdateOptions{}),
		logr,
	)

	report, err := seeder.Apply(ctx, fixture)
	if err != nil {
		logr.Fatal("seed failed", zap.Int("created", report.Created), zap.Int("skipped", report.Skipped), zap.Error(err))
	}
	logr.Info("seed complete", zap.String("file", fixturePath), zap.Int("created", report.Created), zap.Int("skipped", report.Skipped))
}
