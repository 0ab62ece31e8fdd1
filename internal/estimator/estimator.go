package estimator

import "math"

// SeatLoad is the seat availability the estimate is computed against.
type SeatLoad struct {
	Available int
	Busy      int
}

func (l SeatLoad) Total() int {
	return l.Available + l.Busy
}

// Estimate returns the expected wait in minutes for the ticket at the 1-based
// queue position.
//
// With a free seat the queue drains in rounds of Available tickets, each round
// taking one session. Otherwise the ticket first waits for half a session on
// average, then for its share of the queue beyond the tickets already being
// served.
func Estimate(position int, load SeatLoad, avgSessionMinutes, avgWaitMinutes float64) int {
	if position <= 0 {
		return 0
	}
	total := load.Total()
	if total == 0 {
		return int(math.Round(float64(position) * avgSessionMinutes))
	}
	if load.Available > 0 {
		rounds := math.Ceil(float64(position) / float64(load.Available))
		return int(math.Round(rounds * avgSessionMinutes))
	}
	ahead := math.Max(0, float64(position-load.Busy))
	first := math.Ceil(avgSessionMinutes / 2)
	rest := math.Ceil(ahead / float64(total) * avgWaitMinutes)
	return int(first + rest)
}
