package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"biolink/internal/app"
	"biolink/internal/config"
	"biolink/internal/database/schema"
	"biolink/internal/usecase"
)

func main() {
	activate := flag.String("activate", "", "confirm payment for the pending profile with this id")
	listStale := flag.Bool("list-stale", false, "list pending_payment reservations older than the reservation window")
	limit := flag.Int("limit", 50, "max rows for -list-stale")
	flag.Parse()

	id := strings.TrimSpace(*activate)
	if id == "" && !*listStale {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to init container")
	}
	defer func() {
		_ = c.Close()
	}()
	log := c.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := schema.VerifyProfiles(ctx, c.DB); err != nil {
		log.WithError(err).Fatal("schema check failed")
	}

	var ops usecase.ProfileOperations = c.Profiles

	if id != "" {
		if err := runActivate(ctx, ops, id, os.Stdout); err != nil {
			log.WithError(err).WithField("profile_id", id).Fatal("activation failed")
		}
	}

	if *listStale {
		window := c.Slugs.Window()
		n, err := runListStale(ctx, ops, window, *limit, c.Clock.Now(), os.Stdout)
		if err != nil {
			log.WithError(err).Fatal("list stale reservations failed")
		}
		log.WithFields(logrus.Fields{"count": n, "window": window.String()}).Info("stale reservations listed")
	}
}

func runActivate(ctx context.Context, ops usecase.ProfileOperations, rawID string, out io.Writer) error {
	profileID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", rawID, err)
	}
	rec, err := ops.Activate(ctx, profileID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "activated %s (%s)\n", rec.Slug, rec.ID)
	return nil
}

func runListStale(ctx context.Context, ops usecase.ProfileOperations, window time.Duration, limit int, now time.Time, out io.Writer) (int, error) {
	recs, err := ops.StaleReservations(ctx, window, limit)
	if err != nil {
		return 0, err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tCREATED_AT\tAGE")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Slug, r.CreatedAt.Format(time.RFC3339), now.Sub(r.CreatedAt).Truncate(time.Minute))
	}
	return len(recs), w.Flush()
}
