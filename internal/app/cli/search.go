package cli

import (
	"fmt"

	"github.com/rivol/flightsearch/internal/pkg/skypicker"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		departTo       string
		returnTo       string
		maxFlyDuration int
		top            int
	)

	cmd := &cobra.Command{
		Use:   "search FROM TO DEPART RETURN",
		Short: "Run a single round-trip search and print the best journeys",
		Long: "Searches round-trip itineraries between FROM and TO (airport codes, " +
			"comma-separated lists allowed), departing on DEPART and returning on RETURN " +
			"(YYYY-MM-DD). Use --depart-to / --return-to to widen the windows.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			flyFrom, flyTo := args[0], args[1]

			if departTo == "" {
				departTo = args[2]
			}
			if returnTo == "" {
				returnTo = args[3]
			}

			departure, err := parseWindow(args[2], departTo)
			if err != nil {
				return err
			}

			returns, err := parseWindow(args[3], returnTo)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			airlineNames, err := a.planner.AirlineNames(ctx)
			if err != nil {
				return err
			}

			journeys, err := a.planner.RoundTripJourneys(ctx, skypicker.RoundTripCriteria{
				FlyFrom:        flyFrom,
				FlyTo:          flyTo,
				Departure:      departure,
				Return:         returns,
				MaxFlyDuration: maxFlyDuration,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Found %d journeys; top %d:\n", len(journeys), top)

			for _, journey := range topN(journeys, top) {
				if err := printJourney(out, journey, airlineNames); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&departTo, "depart-to", "", "latest departure date (defaults to DEPART)")
	cmd.Flags().StringVar(&returnTo, "return-to", "", "latest return date (defaults to RETURN)")
	cmd.Flags().IntVar(&maxFlyDuration, "max-fly-duration", 0, "max flight duration in hours (0 = unlimited)")
	cmd.Flags().IntVar(&top, "top", 3, "number of journeys to print")

	return cmd
}

func topN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}

	return items
}
