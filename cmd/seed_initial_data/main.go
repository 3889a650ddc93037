package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/logger"
	"quizcraft/internal/poolfile"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
)

const defaultSeedFile = "config/seed_pools.yaml"

func main() {
	flags := pflag.NewFlagSet("seed_initial_data", pflag.ExitOnError)
	seedFile := flags.String("file", defaultSeedFile, "pools file to import (.json, .yaml or .yml)")
	instructorID := flags.String("instructor", "", "instructor that owns the seeded pools")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	data, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	pools, err := poolfile.Parse(*seedFile, data)
	if err != nil {
		log.Fatal("Failed to parse seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	log.Info("Loaded seed pools", zap.Int("topics", len(pools)))

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, cfg.DB.Driver, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	poolService := service.NewPoolService(
		repository.NewPoolRepository(db),
		repository.NewTransactionManagerAdapter(db),
		nil,
	)
	n, err := poolService.ImportPools(context.Background(), *instructorID, pools)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Initial pool seeding completed", zap.Int("pools", n))
}
