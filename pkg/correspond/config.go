// Package correspond implements the correspondence engine (spec.md §4.D):
// given a current frame, a spatial index built over a reference frame, and
// a mutable reference snapshot, it finds a reference counterpart for every
// current point under one of two policies, then produces the averaged
// output frame (spec.md §4.E).
package correspond

import (
	"fmt"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/cost"
)

// Policy selects which correspondence strategy Correspond runs.
type Policy int

const (
	// Nearest is Policy 1: exact nearest-neighbor recovery (spec.md
	// §4.D, "Policy 1 — nearest-only recovery").
	Nearest Policy = iota

	// Ratio is Policy 2: closest-with-ratio recovery, minimizing a
	// weighted cost over the K nearest candidates (spec.md §4.D,
	// "Policy 2 — closest-with-ratio recovery").
	Ratio
)

// DefaultKCandidates is the K used by Ratio when Config.KCandidates is
// left at zero — the source's own constant (spec.md §4.D).
const DefaultKCandidates = 400

// Config is the engine's external configuration (spec.md §6): a policy
// choice, the three cost weights, and K for Ratio. It is passed explicitly
// to Correspond; the engine holds no package-level state (spec.md §9).
type Config struct {
	Policy      Policy
	Weights     cost.Weights
	KCandidates int // only consulted when Policy == Ratio
}

// DefaultConfig returns Nearest-policy defaults with neutral cost weights.
func DefaultConfig() Config {
	return Config{
		Policy:      Nearest,
		Weights:     cost.DefaultWeights(),
		KCandidates: DefaultKCandidates,
	}
}

// resolvedK returns KCandidates if positive, else DefaultKCandidates.
func (c Config) resolvedK() int {
	if c.KCandidates > 0 {
		return c.KCandidates
	}
	return DefaultKCandidates
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Policy != Nearest && c.Policy != Ratio {
		return fmt.Errorf("correspond: unknown policy %d", c.Policy)
	}
	if c.Policy == Ratio && c.KCandidates < 0 {
		return fmt.Errorf("correspond: KCandidates must be >= 0, got %d", c.KCandidates)
	}
	return nil
}
