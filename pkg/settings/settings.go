// Package settings defines the tolerance and feature configuration for the
// dimensioning engine.
//
// A Settings value is loaded once per command invocation and passed
// explicitly into every pipeline stage; there is no ambient or global
// configuration state. All fields have working defaults, so an empty
// settings file (or no file at all) yields a usable configuration.
//
// Settings files are TOML:
//
//	parallel_tolerance = 0.05
//	grid_tolerance = 0.005
//	include_levels = false
//	reference_type = "centerline"
//
// Tolerances are expressed in the document's length unit, except
// parallel_tolerance (a cross-product magnitude, ≈ sin of the angle) and
// perpendicular_tolerance (a deviation from a unit dot product).
package settings

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Reference type names accepted in settings files.
const (
	RefAuto         = "auto"
	RefCenterline   = "centerline"
	RefExteriorFace = "exterior-face"
	RefInteriorFace = "interior-face"
)

// validReferenceTypes is the set of accepted reference_type values.
var validReferenceTypes = map[string]bool{
	RefAuto:         true,
	RefCenterline:   true,
	RefExteriorFace: true,
	RefInteriorFace: true,
}

// Settings is the configuration record consumed by the engine and pipeline.
type Settings struct {
	// ParallelTolerance is the cross-product magnitude below which two 2D
	// directions count as parallel (0.05 ≈ 3°).
	ParallelTolerance float64 `toml:"parallel_tolerance" json:"parallel_tolerance"`

	// PerpendicularTolerance is the allowed deviation of |dir·normal| from
	// 1.0 for an element to count as strictly perpendicular to the view.
	PerpendicularTolerance float64 `toml:"perpendicular_tolerance" json:"perpendicular_tolerance"`

	// DefaultOffset is the perpendicular distance of automatically placed
	// dimension lines from the group centroid (1.64 ft ≈ 0.5 m).
	DefaultOffset float64 `toml:"default_offset" json:"default_offset"`

	// Adaptive collinearity tolerances by element class.
	CollinearityTolerance float64 `toml:"collinearity_tolerance" json:"collinearity_tolerance"`
	StructuralTolerance   float64 `toml:"structural_tolerance" json:"structural_tolerance"`
	GridTolerance         float64 `toml:"grid_tolerance" json:"grid_tolerance"`
	CurtainWallTolerance  float64 `toml:"curtain_wall_tolerance" json:"curtain_wall_tolerance"`

	// Category toggles. Walls and generic linear elements are always
	// candidates; these gate the secondary categories.
	IncludeGrids        bool `toml:"include_grids" json:"include_grids"`
	IncludeLevels       bool `toml:"include_levels" json:"include_levels"`
	IncludeStructural   bool `toml:"include_structural" json:"include_structural"`
	IncludeCurtainWalls bool `toml:"include_curtain_walls" json:"include_curtain_walls"`
	IncludeMullions     bool `toml:"include_mullions" json:"include_mullions"`

	// ReferenceType selects which reference handle dimension witness lines
	// attach to: auto, centerline, exterior-face, or interior-face.
	// Grids and levels always use their centerline regardless.
	ReferenceType string `toml:"reference_type" json:"reference_type"`

	// NudgeChains applies the cosmetic post-pass translation that keeps
	// chains clear of witness-line geometry.
	NudgeChains bool `toml:"nudge_chains" json:"nudge_chains"`
}

// Default returns the settings record with all documented defaults applied.
func Default() Settings {
	return Settings{
		ParallelTolerance:      0.05,
		PerpendicularTolerance: 0.1,
		DefaultOffset:          1.64,
		CollinearityTolerance:  0.01,
		StructuralTolerance:    0.05,
		GridTolerance:          0.005,
		CurtainWallTolerance:   0.008,
		IncludeGrids:           true,
		IncludeLevels:          true,
		IncludeStructural:      true,
		IncludeCurtainWalls:    true,
		IncludeMullions:        true,
		ReferenceType:          RefAuto,
		NudgeChains:            true,
	}
}

// Load reads a TOML settings file on top of the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that all tolerances are positive and the reference type
// is recognized.
func (s Settings) Validate() error {
	positive := map[string]float64{
		"parallel_tolerance":      s.ParallelTolerance,
		"perpendicular_tolerance": s.PerpendicularTolerance,
		"default_offset":          s.DefaultOffset,
		"collinearity_tolerance":  s.CollinearityTolerance,
		"structural_tolerance":    s.StructuralTolerance,
		"grid_tolerance":          s.GridTolerance,
		"curtain_wall_tolerance":  s.CurtainWallTolerance,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", name, v)
		}
	}
	if !validReferenceTypes[s.ReferenceType] {
		return fmt.Errorf("invalid reference_type: %q (must be one of: auto, centerline, exterior-face, interior-face)", s.ReferenceType)
	}
	return nil
}
