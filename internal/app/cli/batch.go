package cli

import (
	"fmt"
	"strings"

	"github.com/rivol/flightsearch/internal/pkg/itinerary"
	"github.com/rivol/flightsearch/internal/pkg/skypicker"
	"github.com/spf13/cobra"
)

// defaultIntermediates are the stopover candidates tried between the
// outbound destination and the trip home.
var defaultIntermediates = []string{
	"PNH", // Phnom Penh, CM
	"MNL", // Manila, PH
	"PPS", // Palawan island, PH
	"SIN", // Singapore, SN
	"BKK", // Bangkok, TH
	"HKT", // Phuket City, TH
	"CNX", // Chiang Mai, TH
	"HAN", // Hanoi, VN
	"DAD", // Da Nang, VN
	"SGN", // HCMC, VN
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		home           string
		dest           string
		returnOrigin   string
		via            []string
		departFrom     string
		departTo       string
		returnFrom     string
		returnTo       string
		finalFrom      string
		finalTo        string
		maxFlyDuration int
		top            int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Search multi-leg journeys through a list of intermediate airports",
		Long: "For each intermediate airport, runs one multi-leg search with three legs: " +
			"home airports to the destination, the return origin to the intermediate stop, " +
			"and the intermediate stop back home. Prints the best journeys per stop and a " +
			"final ranked summary of the winners.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			departure, err := parseWindow(departFrom, departTo)
			if err != nil {
				return err
			}

			returns, err := parseWindow(returnFrom, returnTo)
			if err != nil {
				return err
			}

			finals, err := parseWindow(finalFrom, finalTo)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			airlineNames, err := a.planner.AirlineNames(ctx)
			if err != nil {
				return err
			}

			// searches run one airport at a time; parallelizing them
			// would need an in-flight guard on the request cache
			var winners []*itinerary.Journey

			for _, intermediate := range via {
				legs := []skypicker.LegCriteria{
					{FlyFrom: home, FlyTo: dest, Dates: departure, MaxFlyDuration: maxFlyDuration},
					{FlyFrom: returnOrigin, FlyTo: intermediate, Dates: returns},
					{FlyFrom: intermediate, FlyTo: home, Dates: finals},
				}

				journeys, err := a.planner.MultiLegJourneys(ctx, legs, maxFlyDuration)
				if err != nil {
					return fmt.Errorf("via %s: %w", intermediate, err)
				}

				rule := strings.Repeat("-", 50)
				fmt.Fprintf(out, "%s  via %s  %s\n", rule, intermediate, rule)
				fmt.Fprintf(out, "Found %d journeys\n", len(journeys))

				for _, journey := range topN(journeys, top) {
					if err := printJourney(out, journey, airlineNames); err != nil {
						return err
					}
				}

				if len(journeys) > 0 {
					winners = append(winners, journeys[0])
				}
			}

			if len(winners) == 0 {
				return fmt.Errorf("no journeys found via any intermediate airport")
			}

			// winners are re-ranked against each other for the summary
			if err := itinerary.Rank(a.planner.Scorer, winners); err != nil {
				return err
			}

			fmt.Fprintln(out)

			return printSummaries(out, winners)
		},
	}

	cmd.Flags().StringVar(&home, "home", "TLL,HEL,RIX", "home airports (comma-separated)")
	cmd.Flags().StringVar(&dest, "dest", "SYD", "outbound destination airport")
	cmd.Flags().StringVar(&returnOrigin, "return-origin", "MEL", "airport the trip home starts from")
	cmd.Flags().StringSliceVar(&via, "via", defaultIntermediates, "intermediate airports to try")
	cmd.Flags().StringVar(&departFrom, "depart-from", "", "earliest outbound date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&departTo, "depart-to", "", "latest outbound date")
	cmd.Flags().StringVar(&returnFrom, "return-from", "", "earliest date for the intermediate leg")
	cmd.Flags().StringVar(&returnTo, "return-to", "", "latest date for the intermediate leg")
	cmd.Flags().StringVar(&finalFrom, "final-from", "", "earliest date for the leg home")
	cmd.Flags().StringVar(&finalTo, "final-to", "", "latest date for the leg home")
	cmd.Flags().IntVar(&maxFlyDuration, "max-fly-duration", 32, "max flight duration in hours")
	cmd.Flags().IntVar(&top, "top", 2, "journeys to print per intermediate airport")

	for _, flag := range []string{"depart-from", "depart-to", "return-from", "return-to", "final-from", "final-to"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
