// Package dataset models the benchmark samples a performance chart is
// rendered from: one (player count, tick time) pair per measured point.
//
// A Dataset is constructed once, validated up front, and never mutated
// afterwards; the renderer owns it for exactly one invocation.
package dataset

import (
	"math"
	"sort"

	"github.com/go-faster/errors"
)

// ErrInvalidDataset marks any dataset rejected before rendering begins:
// empty sample set, non-positive player count, duplicate player count, or a
// tick time that is not a non-negative finite number.
var ErrInvalidDataset = errors.New("invalid dataset")

// Sample is one measured point: how long a server tick took at a given
// concurrent player count.
type Sample struct {
	Players int64   `json:"players"`
	TickMs  float64 `json:"tick_ms"`
}

// Dataset is an ordered collection of samples, ascending by player count
// with unique counts. The zero value is empty and invalid for rendering.
type Dataset struct {
	samples []Sample
}

// New copies, sorts (ascending by player count) and validates the given
// samples. Player counts must be strictly positive because the count axis is
// rendered on a logarithmic scale.
func New(samples []Sample) (Dataset, error) {
	if len(samples) == 0 {
		return Dataset{}, errors.Wrap(ErrInvalidDataset, "empty sample set")
	}
	ss := make([]Sample, len(samples))
	copy(ss, samples)
	sort.Slice(ss, func(i, j int) bool { return ss[i].Players < ss[j].Players })
	for i, s := range ss {
		if s.Players <= 0 {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "player count %d must be positive (count axis is logarithmic)", s.Players)
		}
		if i > 0 && ss[i-1].Players == s.Players {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "duplicate player count %d", s.Players)
		}
		if math.IsNaN(s.TickMs) || math.IsInf(s.TickMs, 0) || s.TickMs < 0 {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "tick time %v ms at %d players must be a non-negative number", s.TickMs, s.Players)
		}
	}
	return Dataset{samples: ss}, nil
}

// Len returns the number of samples.
func (d Dataset) Len() int { return len(d.samples) }

// Samples returns a copy of the samples so callers cannot mutate the dataset.
func (d Dataset) Samples() []Sample {
	out := make([]Sample, len(d.samples))
	copy(out, d.samples)
	return out
}

// MaxPlayers returns the largest player count. Zero for an empty dataset.
func (d Dataset) MaxPlayers() int64 {
	if len(d.samples) == 0 {
		return 0
	}
	// samples are sorted ascending
	return d.samples[len(d.samples)-1].Players
}

// MaxTickMs returns the largest tick time across all samples.
func (d Dataset) MaxTickMs() float64 {
	max := 0.0
	for _, s := range d.samples {
		if s.TickMs > max {
			max = s.TickMs
		}
	}
	return max
}
