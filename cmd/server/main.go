package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"biolink/internal/app"
	"biolink/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to bootstrap app")
	}
	log := bootstrap.Container.Logger
	defer func() {
		if err := cleanup(); err != nil {
			log.WithError(err).Error("cleanup error")
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.WithError(err).Fatal("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr": addr,
			"env":  cfg.App.Environment,
		}).Info("HTTP server listening")
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("server error")
		}
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.WithError(err).Error("shutdown error")
		}
	}
}
