package leitner

import "time"

// Default schedule: four boxes with a doubling interval, expressed in
// seconds. These are configuration defaults, not domain truths; deployments
// may rescale to minutes or days without touching the algorithm.
const DefaultMaxBox = 4

// DefaultBoxIntervals holds the default spacing per box, indexed by box-1.
var DefaultBoxIntervals = []time.Duration{
	10 * time.Second,
	20 * time.Second,
	40 * time.Second,
	80 * time.Second,
}

// Params defines all configurable parameters for the Leitner scheduler.
type Params struct {
	// MaxBox is the highest box a card can reach. Correct answers at
	// MaxBox keep the card there.
	MaxBox int

	// BoxIntervals maps box level to review spacing; BoxIntervals[box-1]
	// is the delay applied after a card lands in that box. Its length
	// must equal MaxBox.
	BoxIntervals []time.Duration
}

// ParamsConfig allows overriding the defaults when creating Params.
type ParamsConfig struct {
	MaxBox             int
	BoxIntervalSeconds []int
}

// NewDefaultParams creates a Params instance with the default four-box
// doubling schedule.
func NewDefaultParams() *Params {
	intervals := make([]time.Duration, len(DefaultBoxIntervals))
	copy(intervals, DefaultBoxIntervals)
	return &Params{
		MaxBox:       DefaultMaxBox,
		BoxIntervals: intervals,
	}
}

// NewParams creates a Params instance with custom configuration. Zero or
// inconsistent overrides fall back to the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxBox > 0 {
		params.MaxBox = config.MaxBox
	}
	if len(config.BoxIntervalSeconds) == params.MaxBox {
		intervals := make([]time.Duration, len(config.BoxIntervalSeconds))
		for i, secs := range config.BoxIntervalSeconds {
			intervals[i] = time.Duration(secs) * time.Second
		}
		params.BoxIntervals = intervals
	} else if params.MaxBox != len(params.BoxIntervals) {
		// MaxBox was overridden without matching intervals: extend the
		// doubling schedule to cover the extra boxes.
		intervals := make([]time.Duration, params.MaxBox)
		last := DefaultBoxIntervals[0]
		for i := 0; i < params.MaxBox; i++ {
			if i < len(DefaultBoxIntervals) {
				last = DefaultBoxIntervals[i]
			} else {
				last *= 2
			}
			intervals[i] = last
		}
		params.BoxIntervals = intervals
	}

	return params
}

// Interval returns the review spacing for the given box, clamping the box
// into the valid [1, MaxBox] range.
func (p *Params) Interval(box int) time.Duration {
	if box < 1 {
		box = 1
	}
	if box > p.MaxBox {
		box = p.MaxBox
	}
	return p.BoxIntervals[box-1]
}
