package minimax

import (
	"fmt"
	"strings"
)

// Variant is a named preset of the engine flags, one per strategy the game
// front-ends let you pick
type Variant int

const (
	// Full tree, no pruning, no depth limit. Very slow past 3x3.
	VariantPlain Variant = iota

	// Alpha-beta with a depth cutoff and static evaluation
	VariantDepthLimit

	// Alpha-beta to terminal positions
	VariantAlphaBeta

	// Depth limited alpha-beta, candidate moves searched by a worker pool
	VariantParallel
)

var variantNames = [...]string{
	VariantPlain:      "plain",
	VariantDepthLimit: "depth-limit",
	VariantAlphaBeta:  "alpha-beta",
	VariantParallel:   "parallel",
}

func Variants() []Variant {
	return []Variant{VariantPlain, VariantDepthLimit, VariantAlphaBeta, VariantParallel}
}

func (v Variant) String() string {
	if v >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for v, n := range variantNames {
		if n == name {
			return Variant(v), nil
		}
	}
	return VariantPlain, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Options returns the engine options of this preset. Depth is used only by the
// depth limited presets, threads only by the parallel one (below 1: one per CPU).
func (v Variant) Options(depth, threads int) []Option {
	switch v {
	case VariantPlain:
		return []Option{WithPruning(false), WithParallel(false), WithLimits(DefaultLimits())}
	case VariantAlphaBeta:
		return []Option{WithPruning(true), WithParallel(false), WithLimits(DefaultLimits())}
	case VariantParallel:
		return []Option{
			WithPruning(true), WithParallel(true),
			WithLimits(DefaultLimits().SetDepth(depth).SetThreads(threads)),
		}
	default:
		return []Option{WithPruning(true), WithParallel(false), WithLimits(DefaultLimits().SetDepth(depth))}
	}
}
