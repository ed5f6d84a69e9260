package recommender

import "fmt"

// Weights is the blending policy: the multiplier applied to each
// strategy's raw scores before merging. A strategy with weight 0 is not
// invoked at all. Weights are a tunable policy, but the sum must stay
// within 1.0 so blended scores remain in [0, 1].
type Weights struct {
	Content       float64 `koanf:"content" json:"content"`
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
	Popularity    float64 `koanf:"popularity" json:"popularity"`
	Diversity     float64 `koanf:"diversity" json:"diversity"`
}

// DefaultWeights is the production split with diversity disabled.
func DefaultWeights() Weights {
	return Weights{
		Content:       0.5,
		Collaborative: 0.25,
		Popularity:    0.25,
		Diversity:     0,
	}
}

// DiversityWeights is the alternative split with diversity folded in as
// a fourth source.
func DiversityWeights() Weights {
	return Weights{
		Content:       0.4,
		Collaborative: 0.25,
		Popularity:    0.2,
		Diversity:     0.15,
	}
}

func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"content", w.Content},
		{"collaborative", w.Collaborative},
		{"popularity", w.Popularity},
		{"diversity", w.Diversity},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("weight %s must be in [0, 1], got %v", f.name, f.value)
		}
	}
	if sum := w.Content + w.Collaborative + w.Popularity + w.Diversity; sum > 1.0 {
		return fmt.Errorf("weights must sum to at most 1.0, got %v", sum)
	}
	return nil
}
