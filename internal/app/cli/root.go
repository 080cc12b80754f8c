// Package cli wires the cobra command surface: single round-trip search,
// batch multi-leg search over intermediate airports, booking-confirmation
// formatting, and the HTTP serving mode.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rivol/flightsearch/internal/app/config"
	"github.com/rivol/flightsearch/internal/app/dto"
	"github.com/rivol/flightsearch/internal/app/service"
	"github.com/rivol/flightsearch/internal/pkg/itinerary"
	"github.com/rivol/flightsearch/internal/pkg/logger"
	"github.com/rivol/flightsearch/internal/pkg/requestcache"
	"github.com/rivol/flightsearch/internal/pkg/skypicker"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02"

// app carries the dependencies shared by all subcommands, assembled once
// in the root command's PersistentPreRun.
type app struct {
	cfg     config.Config
	planner *service.PlannerService
}

// Execute runs the flightsearch CLI and returns an error if any command
// fails.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configFile string
		a          app
	)

	root := &cobra.Command{
		Use:          "flightsearch",
		Short:        "Search, score, and rank flight itineraries",
		Long:         "flightsearch queries the Skypicker flight-search API, caches responses in Redis, and ranks itineraries by an estimated all-in cost (ticket price, airport overhead, and travel time).",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustInitConfig(configFile)
			if verbose {
				cfg.LogLevel = "debug"
			}

			logger.InitStructuredLogger(cfg.LogLevel)

			if err := dto.InitValidator(); err != nil {
				return fmt.Errorf("failed to init validator: %w", err)
			}

			a.cfg = cfg
			a.planner = newPlanner(cfg)

			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", ".env", "config file")

	root.AddCommand(newSearchCmd(&a))
	root.AddCommand(newBatchCmd(&a))
	root.AddCommand(newBookingCmd())
	root.AddCommand(newServeCmd(&a))

	return root.ExecuteContext(ctx)
}

func newPlanner(cfg config.Config) *service.PlannerService {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	cache := requestcache.NewCache(redisClient)
	limiter := redis_rate.NewLimiter(redisClient)

	client := skypicker.NewClient(skypicker.Config{
		BaseURL:      cfg.Kiwi.BaseURL,
		Partner:      cfg.Kiwi.Partner,
		Timeout:      cfg.Kiwi.Timeout,
		RateLimitRPS: cfg.Kiwi.RateLimitRPS,
		CacheTTL:     cfg.Kiwi.CacheTTL,
	}, cache, limiter)

	scorer := itinerary.NewScorer(cfg.Scoring.HourlyCost)

	return service.NewPlannerService(client, scorer)
}

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", raw, err)
	}

	return parsed, nil
}

func parseWindow(from, to string) (skypicker.DateWindow, error) {
	parsedFrom, err := parseDate(from)
	if err != nil {
		return skypicker.DateWindow{}, err
	}

	parsedTo, err := parseDate(to)
	if err != nil {
		return skypicker.DateWindow{}, err
	}

	return skypicker.DateWindow{From: parsedFrom, To: parsedTo}, nil
}
