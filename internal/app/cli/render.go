package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivol/flightsearch/internal/pkg/itinerary"
)

var (
	journeyStyle = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

const timeFormat = "2006-01-02 15:04:05"

// formatDuration renders a duration as hours and zero-padded minutes,
// e.g. 2h05.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	return fmt.Sprintf("%dh%02d", h, m)
}

// routeSummary is the short DEP-ARR,DEP-ARR form of a journey.
func routeSummary(journey *itinerary.Journey) (string, error) {
	parts := make([]string, 0, len(journey.Flights))

	for _, flight := range journey.Flights {
		dep, err := flight.DepAirport()
		if err != nil {
			return "", err
		}

		arr, _ := flight.ArrAirport()
		parts = append(parts, dep+"-"+arr)
	}

	return strings.Join(parts, ","), nil
}

// printJourney writes the full journey detail: headline with price,
// duration and score breakdown, then one block per flight with its hops.
func printJourney(w io.Writer, journey *itinerary.Journey, airlineNames map[string]string) error {
	route, err := routeSummary(journey)
	if err != nil {
		return err
	}

	duration, err := journey.Duration()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, journeyStyle.Render(fmt.Sprintf("### %s  %.0f€  %s",
		route, journey.Price(), formatDuration(duration))))

	if score, scored := journey.TotalScore(); scored {
		terms := make([]string, 0, len(journey.Breakdown))
		for _, component := range journey.Breakdown {
			terms = append(terms, fmt.Sprintf("%.0f", component.Value))
		}

		fmt.Fprintf(w, "    S:  %.0f = %s\n", score, strings.Join(terms, " + "))
	}

	for _, flight := range journey.Flights {
		if err := printFlight(w, flight, airlineNames); err != nil {
			return err
		}

		fmt.Fprintln(w)
	}

	return nil
}

func printFlight(w io.Writer, flight itinerary.Flight, airlineNames map[string]string) error {
	depAirport, err := flight.DepAirport()
	if err != nil {
		return err
	}

	arrAirport, _ := flight.ArrAirport()
	depTime, _ := flight.DepTime()
	arrTime, _ := flight.ArrTime()
	duration, _ := flight.Duration()

	fmt.Fprintf(w, "  # %s  %s - %s  %s  - %s  %.0f€\n",
		depTime.Format(timeFormat), depAirport, arrAirport,
		arrTime.Format(timeFormat), formatDuration(duration), flight.Price)

	for _, hop := range flight.Hops {
		name := airlineNames[hop.AirlineID]
		if name == "" {
			name = hop.AirlineID
		}

		fmt.Fprintf(w, "    %s  %s - %s  %s  - %s %s\n",
			hop.DepTime.Format(timeFormat), hop.DepAirport, hop.ArrAirport,
			hop.ArrTime.Format(timeFormat), formatDuration(hop.Duration()), name)
	}

	return nil
}

// printSummaries writes the final one-line-per-journey ranked table.
// Journeys are expected to be ranked already.
func printSummaries(w io.Writer, journeys []*itinerary.Journey) error {
	fmt.Fprintln(w, sectionStyle.Render("SUMMARIES:"))

	for _, journey := range journeys {
		route, err := routeSummary(journey)
		if err != nil {
			return err
		}

		duration, err := journey.Duration()
		if err != nil {
			return err
		}

		score, _ := journey.TotalScore()

		fmt.Fprintf(w, "S: %.0f  |  %4.0f €  |  %s  |  %s\n",
			score, journey.Price(), formatDuration(duration), route)
	}

	return nil
}
