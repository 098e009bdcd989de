package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"biolink/internal/config"
	"biolink/internal/database"
	dbpostgres "biolink/internal/database/postgres"
	"biolink/internal/infrastructure/cache"
	"biolink/internal/pkg/clock"
	"biolink/internal/pkg/logger"
	"biolink/internal/repository"
	ucprofile "biolink/internal/usecase/profile"
	"biolink/internal/usecase/slug"
)

type Container struct {
	Config config.Config
	Logger *logrus.Logger
	DB     database.DB
	Cache  *cache.Redis
	Clock  clock.Clock

	Slugs    *slug.Service
	Profiles *ucprofile.Service
}

func NewContainer(cfg config.Config) (*Container, error) {
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"host": cfg.Database.DBHost,
		"db":   cfg.Database.DBName,
	}).Info("[DB] connected")

	return newContainer(cfg, log, db, cache.NewRedis(cfg.Redis, log), clock.NewSystem()), nil
}

func newContainer(cfg config.Config, log *logrus.Logger, db database.DB, c *cache.Redis, clk clock.Clock) *Container {
	profiles := repository.NewPostgresProfileRepository(db)
	slugs := slug.NewService(profiles, clk,
		slug.WithReservationWindow(cfg.Slug.ReservationWindow),
		slug.WithLookupTimeout(cfg.Slug.LookupTimeout),
		slug.WithLogger(log),
	)

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Cache:    c,
		Clock:    clk,
		Slugs:    slugs,
		Profiles: ucprofile.NewService(profiles, slugs, c, clk, log),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
