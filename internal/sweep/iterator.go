// Package sweep walks the Cartesian product of sweep parameters and fetches
// and caches one flight-offer search result per tuple.
package sweep

import (
	"iter"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

// Tuples yields every combination of the sweep axes with origin outermost,
// then first date, then destination, then last date innermost.
func Tuples(p domain.SweepParameters) iter.Seq[domain.Tuple] {
	return func(yield func(domain.Tuple) bool) {
		for _, origin := range p.Origins {
			for _, firstDate := range p.FirstDates {
				for _, destination := range p.Destinations {
					for _, lastDate := range p.LastDates {
						t := domain.Tuple{
							Origin:      origin,
							FirstDate:   firstDate,
							Destination: destination,
							LastDate:    lastDate,
						}
						if !yield(t) {
							return
						}
					}
				}
			}
		}
	}
}
