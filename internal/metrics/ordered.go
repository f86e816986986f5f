package metrics

// OrderedFraction reports the fraction of samples whose magnetization per
// site reaches a threshold.
type OrderedFraction struct {
	name      string
	threshold float64
	ordered   int
	samples   int
}

func NewOrderedFraction(threshold float64) *OrderedFraction {
	return &OrderedFraction{
		name:      "ordered_fraction",
		threshold: threshold,
	}
}

func (o *OrderedFraction) Name() string { return o.name }

func (o *OrderedFraction) Observe(e, m float64) {
	o.samples++
	if m >= o.threshold {
		o.ordered++
	}
}

func (o *OrderedFraction) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.ordered) / float64(o.samples)
}

func (o *OrderedFraction) Reset() {
	o.ordered = 0
	o.samples = 0
}

// MinEnergy tracks the lowest energy per site seen.
type MinEnergy struct {
	min     float64
	samples int
}

func NewMinEnergy() *MinEnergy { return &MinEnergy{} }

func (m *MinEnergy) Name() string { return "min_energy" }

func (m *MinEnergy) Observe(e, mag float64) {
	if m.samples == 0 || e < m.min {
		m.min = e
	}
	m.samples++
}

func (m *MinEnergy) Value() float64 { return m.min }

func (m *MinEnergy) Reset() {
	m.min = 0
	m.samples = 0
}
