package main

import (
	"context"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/database"
	"github.com/SeakMengs/certgen/internal/env"
	"github.com/SeakMengs/certgen/internal/repository"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv()
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB, cfg.IsProduction())
	if err != nil {
		logger.Panic(err)
	}

	ctx := context.Background()
	if err := database.Ping(ctx, db); err != nil {
		logger.Panic(err)
	}

	if err := db.AutoMigrate(repository.Models()...); err != nil {
		logger.Panic(err)
	}
	logger.Info("Migration completed")

	if !cfg.SEED_DEFAULT_DATA {
		return
	}

	seeded, err := repository.NewRepository(db, logger).SeedDefaultData(ctx)
	if err != nil {
		logger.Panic(err)
	}
	if seeded {
		logger.Infof("Seeded default data, every user has the password %q", repository.DefaultSeedPassword)
	}
}
