// Command stampede fires a burst of concurrent purchases at a single ticket
// tier and reports whether the inventory held: with capacity N and M > N
// buyers, exactly N purchases must succeed and the rest must see sold-out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arrieta/campus-tickets/internal/app"
	"github.com/arrieta/campus-tickets/internal/clock"
	"github.com/arrieta/campus-tickets/internal/config"
	"github.com/arrieta/campus-tickets/internal/domain"
	"github.com/arrieta/campus-tickets/internal/storage/postgres"
	"github.com/arrieta/campus-tickets/migrations"
)

func main() {
	capacity := flag.Int("capacity", 10, "tier capacity for the seeded event")
	buyers := flag.Int("buyers", 50, "number of concurrent purchase attempts")
	attempts := flag.Int("retries", 25, "conflict retry budget per purchase")
	flag.Parse()

	logger := logrus.New()
	_, _ = config.LoadDotEnv()
	cfg, err := config.Parse()
	if err != nil {
		logger.WithError(err).Fatal("parse config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	eventSvc := app.NewEventService(postgres.NewEventRepository(pool))
	date := time.Now().Add(24 * time.Hour)
	event, err := eventSvc.CreateEvent(ctx, app.EventInput{
		Title:    "Stampede " + shortuuid.New(),
		Date:     &date,
		Location: "Load Test Arena",
		Tiers:    []app.TierInput{{Name: "General", Price: 15, Total: *capacity}},
	})
	if err != nil {
		logger.WithError(err).Fatal("seed event")
	}

	purchaseSvc := app.NewPurchaseService(
		postgres.NewPurchaseRepository(pool),
		clock.NewSystem(),
		app.WithMaxAttempts(*attempts),
	)

	var succeeded, soldOut, failed int
	results := make(chan error, *buyers)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < *buyers; i++ {
		g.Go(func() error {
			_, err := purchaseSvc.Purchase(gctx, app.PurchaseInput{
				EventID:  event.ID,
				TierName: "General",
				UserID:   "buyer-" + shortuuid.New(),
			})
			results <- err
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	elapsed := time.Since(start)

	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSoldOut):
			soldOut++
		default:
			failed++
			logger.WithError(err).Warn("purchase failed")
		}
	}

	final, err := eventSvc.GetEvent(ctx, event.ID)
	if err != nil {
		logger.WithError(err).Fatal("re-read event")
	}
	tier, _ := final.FindTier("General")

	fmt.Printf("buyers:     %d\n", *buyers)
	fmt.Printf("capacity:   %d\n", *capacity)
	fmt.Printf("succeeded:  %d\n", succeeded)
	fmt.Printf("sold out:   %d\n", soldOut)
	fmt.Printf("errors:     %d\n", failed)
	fmt.Printf("final sold: %d\n", tier.Sold)
	fmt.Printf("elapsed:    %s\n", elapsed)

	if succeeded != *capacity || tier.Sold != *capacity {
		fmt.Println("FAIL: inventory invariant violated")
		os.Exit(1)
	}
	fmt.Println("PASS: sold == capacity, no oversell")
}
