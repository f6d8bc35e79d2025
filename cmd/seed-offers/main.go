// Command seed-offers loads an ofertas.json file (plain or gzip-compressed)
// into the PostgreSQL offer table, preserving file order so first-match
// lookup semantics survive the import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/offer"
	"github.com/tiendaverde/storefront/internal/repository"
)

type offerJSON struct {
	ID        int64   `json:"id"`
	Descuento float64 `json:"descuento"`
}

func main() {
	var (
		offersFile  string
		databaseURL string
	)

	flag.StringVar(&offersFile, "offers-file", "ofertas.json", "path to the offers JSON file (.gz supported)")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, offersFile, databaseURL); err != nil {
		slog.Error("offer seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("offer seed completed successfully")
}

func run(ctx context.Context, offersFile, databaseURL string) error {
	offers, err := readOffers(offersFile)
	if err != nil {
		return errors.Wrap(err, "read offers")
	}
	slog.Info("offers loaded from file", slog.Int("count", len(offers)))

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := repository.NewOfferRepository(pool)
	if err := repo.Replace(ctx, offers); err != nil {
		return errors.Wrap(err, "replace offer table")
	}
	return nil
}

func readOffers(path string) ([]offer.Offer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	var raw []offerJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode offers")
	}

	offers := make([]offer.Offer, len(raw))
	for i, o := range raw {
		offers[i] = offer.Offer{
			ID:        o.ID,
			Descuento: decimal.NewFromFloat(o.Descuento),
		}
	}
	return offers, nil
}
