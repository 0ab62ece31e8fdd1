package estimator

// RollingAverage is the mean of the last N samples. The seed value counts as
// the first sample until it is pushed out of the window.
type RollingAverage struct {
	window  int
	samples []float64
}

func NewRollingAverage(window int, seed float64) *RollingAverage {
	if window <= 0 {
		window = 1
	}
	return &RollingAverage{window: window, samples: []float64{seed}}
}

func (r *RollingAverage) Add(v float64) {
	r.samples = append(r.samples, v)
	if over := len(r.samples) - r.window; over > 0 {
		r.samples = r.samples[over:]
	}
}

// Reset drops every sample and starts again from seed.
func (r *RollingAverage) Reset(seed float64) {
	r.samples = []float64{seed}
}

func (r *RollingAverage) Value() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.samples {
		sum += s
	}
	return sum / float64(len(r.samples))
}

func (r *RollingAverage) Clone() *RollingAverage {
	c := &RollingAverage{window: r.window, samples: make([]float64, len(r.samples))}
	copy(c.samples, r.samples)
	return c
}
