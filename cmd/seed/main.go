// Command seed loads reference data and approves accounts.
//
//	seed                                  # planes, news, terms, coordinates.csv if present
//	seed -coordinates ./cordinates.xlsx   # coordinates from a spreadsheet
//	seed -only planes,terms
//	seed -activate pilot@example.com      # approve a pending registration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/internal/seed"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/database"
	applogger "github.com/kvnochieng52/flight-distance/pkg/logger"
	"github.com/kvnochieng52/flight-distance/pkg/redis"
)

var allSteps = []string{"coordinates", "planes", "news", "terms"}

func main() {
	configPath := flag.String("config", "", "path to config file")
	coordinatesPath := flag.String("coordinates", "cordinates.csv", "coordinate sheet (.csv or .xlsx)")
	only := flag.String("only", "", "comma separated steps to run: "+strings.Join(allSteps, ","))
	activate := flag.String("activate", "", "approve the account with this email and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	var cache service.Cache
	if rdb, err := redis.NewClient(&cfg.Redis, logger); err != nil {
		logger.Warn("redis unavailable, catalog caches will expire on their own", zap.Error(err))
	} else {
		defer rdb.Close()
		cache = rdb
	}

	repo := repository.NewRepository(db)
	seeder := seed.New(repo,
		service.NewTermsService(repo, logger),
		service.NewUserService(repo, logger),
		cache,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *activate != "" {
		if _, err := seeder.Activate(ctx, *activate); err != nil {
			logger.Fatal("activate user failed", zap.String("email", *activate), zap.Error(err))
		}
		return
	}

	steps := allSteps
	if *only != "" {
		steps = strings.Split(*only, ",")
		for _, s := range steps {
			if !slices.Contains(allSteps, strings.TrimSpace(s)) {
				logger.Fatal("unknown step", zap.String("step", s))
			}
		}
	}

	for _, step := range steps {
		if err := run(ctx, seeder, strings.TrimSpace(step), *coordinatesPath, *only != "", logger); err != nil {
			logger.Fatal("seed step failed", zap.String("step", step), zap.Error(err))
		}
	}
	logger.Info("seeding finished", zap.Strings("steps", steps))
}

// run executes one step. A missing coordinate file is fatal only when the
// coordinates step was asked for explicitly.
func run(ctx context.Context, s *seed.Seeder, step, coordinatesPath string, explicit bool, logger *zap.Logger) error {
	switch step {
	case "coordinates":
		rows, err := seed.ReadRows(coordinatesPath)
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			logger.Warn("coordinate file not found, skipping", zap.String("path", coordinatesPath))
			return nil
		}
		if err != nil {
			return err
		}
		_, err = s.Coordinates(ctx, rows)
		return err
	case "planes":
		n, err := s.Planes(ctx)
		if err == nil {
			logger.Info("planes seeded", zap.Int("inserted", n))
		}
		return err
	case "news":
		n, err := s.News(ctx)
		if err == nil {
			logger.Info("news seeded", zap.Int("inserted", n))
		}
		return err
	case "terms":
		t, err := s.Terms(ctx)
		if err == nil {
			logger.Info("terms active", zap.Uint("id", t.ID), zap.String("version", t.Version))
		}
		return err
	}
	return nil
}
