package services

import (
	"math/rand"

	"keyquest/internal/models"
)

// RandSource yields the next float in [0, 1). Injectable so resolution is
// reproducible under test; the default shares math/rand's locked global
// generator. Gameplay randomness is not a security boundary.
type RandSource interface {
	Float64() float64
}

type globalRandSource struct{}

func (globalRandSource) Float64() float64 { return rand.Float64() }

// Resolver maps a loot box to a single reward id, honoring the relative item
// weights. Stateless apart from its randomness source.
type Resolver struct {
	source RandSource
}

func NewResolver(source RandSource) *Resolver {
	if source == nil {
		source = globalRandSource{}
	}

	return &Resolver{source}
}

// Resolve draws r uniformly from [0, total) and walks the items in stored
// order, returning the first whose cumulative weight reaches r. Weights do
// not need to sum to 100.
func (resolver *Resolver) Resolve(box *models.LootBox) (int64, error) {
	var total float64
	for _, item := range box.Items {
		total += item.Weight
	}

	if len(box.Items) == 0 || total <= 0 {
		return 0, ErrDegenerateBox
	}

	r := resolver.source.Float64() * total

	var cumulative float64
	for _, item := range box.Items {
		cumulative += item.Weight
		if r <= cumulative {
			return item.RewardID, nil
		}
	}

	// float accumulation can leave r just past the final cumulative sum;
	// the last item is the defined fallback
	return box.Items[len(box.Items)-1].RewardID, nil
}
