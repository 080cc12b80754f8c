package cli

import (
	"fmt"
	"time"

	"github.com/rivol/flightsearch/internal/pkg/booking"
	"github.com/spf13/cobra"
)

func newBookingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "booking URL",
		Short: "Print a brief itinerary for a booking-confirmation URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Fetching data...")

			client := booking.NewClient(timeout)

			confirmation, err := client.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Kiwi booking %d\n", confirmation.BID)

			for _, line := range confirmation.FormatLines() {
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	return cmd
}
