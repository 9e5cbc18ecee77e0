package games

import "github.com/MJE43/arcadia-desktop/internal/schedule"

// fixedRand replays vals, then returns 0.
type fixedRand struct{ vals []int }

func (r *fixedRand) Intn(n int) int {
	if len(r.vals) == 0 || n <= 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

type result struct {
	game  ID
	value int
}

type recorder struct{ results []result }

func (r *recorder) RecordResult(game ID, value int) {
	r.results = append(r.results, result{game, value})
}

type harness struct {
	clock   *schedule.Manual
	rec     *recorder
	renders int
}

func newHarness() *harness {
	return &harness{clock: schedule.NewManual(), rec: &recorder{}}
}

func (h *harness) options(rand ...int) Options {
	return Options{
		Scheduler: h.clock,
		Rand:      &fixedRand{vals: rand},
		Reporter:  h.rec,
		OnChange:  func() { h.renders++ },
	}
}
