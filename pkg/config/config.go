// Package config holds the engine's external configuration, following the
// teacher's plain-struct-plus-Default/LoadFromEnv/Validate shape.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/correspond"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/cost"
)

// Config holds everything a correspondence run needs beyond the frames
// themselves.
type Config struct {
	Engine EngineConfig
	Cache  CacheConfig
	Store  StoreConfig
}

// EngineConfig selects the correspondence policy and its cost weights.
type EngineConfig struct {
	Policy      correspond.Policy
	WeightCoord float32
	WeightColor float32
	WeightMap   float32
	KCandidates int
}

// CacheConfig controls the nearest-neighbor query cache.
type CacheConfig struct {
	Enabled  bool
	Capacity int
}

// StoreConfig controls the reference-frame registry's quota.
type StoreConfig struct {
	MaxPointsPerFrame int
}

// Default returns the engine's default configuration: Policy 1
// (nearest-only), neutral cost weights, a 400-candidate cap for Policy 2
// if later switched on, and a modest cache/quota.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Policy:      correspond.Nearest,
			WeightCoord: 1,
			WeightColor: 0,
			WeightMap:   0,
			KCandidates: correspond.DefaultKCandidates,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1000,
		},
		Store: StoreConfig{
			MaxPointsPerFrame: 5_000_000,
		},
	}
}

// LoadFromEnv starts from Default and overlays POINTMESH_* environment
// variables, ignoring any variable that fails to parse (matching the
// teacher's parse-or-ignore convention).
func LoadFromEnv() *Config {
	cfg := Default()

	if policy := os.Getenv("POINTMESH_POLICY"); policy != "" {
		switch policy {
		case "nearest":
			cfg.Engine.Policy = correspond.Nearest
		case "ratio":
			cfg.Engine.Policy = correspond.Ratio
		}
	}
	if v := os.Getenv("POINTMESH_WEIGHT_COORD"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Engine.WeightCoord = float32(f)
		}
	}
	if v := os.Getenv("POINTMESH_WEIGHT_COLOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Engine.WeightColor = float32(f)
		}
	}
	if v := os.Getenv("POINTMESH_WEIGHT_MAP"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Engine.WeightMap = float32(f)
		}
	}
	if v := os.Getenv("POINTMESH_K_CANDIDATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.KCandidates = n
		}
	}

	if v := os.Getenv("POINTMESH_CACHE_ENABLED"); v == "false" {
		cfg.Cache.Enabled = false
	}
	if v := os.Getenv("POINTMESH_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Capacity = n
		}
	}

	if v := os.Getenv("POINTMESH_MAX_POINTS_PER_FRAME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.MaxPointsPerFrame = n
		}
	}

	return cfg
}

// Validate aggregates range checks across every sub-config, matching the
// teacher's single-pass validation style.
func (c *Config) Validate() error {
	if c.Engine.Policy != correspond.Nearest && c.Engine.Policy != correspond.Ratio {
		return fmt.Errorf("invalid policy: %d", c.Engine.Policy)
	}
	if c.Engine.Policy == correspond.Ratio && c.Engine.KCandidates < 1 {
		return fmt.Errorf("invalid k candidates: %d (must be > 0 for ratio policy)", c.Engine.KCandidates)
	}
	if c.Engine.WeightCoord < 0 || c.Engine.WeightColor < 0 || c.Engine.WeightMap < 0 {
		return fmt.Errorf("cost weights must be non-negative: coord=%v color=%v map=%v",
			c.Engine.WeightCoord, c.Engine.WeightColor, c.Engine.WeightMap)
	}
	if c.Cache.Enabled && c.Cache.Capacity < 1 {
		return fmt.Errorf("invalid cache capacity: %d (must be > 0)", c.Cache.Capacity)
	}
	if c.Store.MaxPointsPerFrame < 1 {
		return fmt.Errorf("invalid max points per frame: %d (must be > 0)", c.Store.MaxPointsPerFrame)
	}
	return nil
}

// EngineConfig converts into a correspond.Config for passing to
// correspond.Run.
func (e EngineConfig) ToCorrespondConfig() correspond.Config {
	return correspond.Config{
		Policy: e.Policy,
		Weights: cost.Weights{
			Coord:   e.WeightCoord,
			Color:   e.WeightColor,
			Mapping: e.WeightMap,
		},
		KCandidates: e.KCandidates,
	}
}
