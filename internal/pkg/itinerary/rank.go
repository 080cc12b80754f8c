package itinerary

import (
	"fmt"
	"sort"
)

// Rank scores every journey and sorts them ascending by total score, best
// first. The sort is stable, so journeys with equal scores keep their
// original relative order. Scoring a journey that already carries a
// breakdown recomputes it from scratch.
func Rank(scorer *Scorer, journeys []*Journey) error {
	for i, journey := range journeys {
		if _, err := scorer.Score(journey); err != nil {
			return fmt.Errorf("score journey %d: %w", i, err)
		}
	}

	sort.SliceStable(journeys, func(i, j int) bool {
		si, _ := journeys[i].TotalScore()
		sj, _ := journeys[j].TotalScore()

		return si < sj
	})

	return nil
}
