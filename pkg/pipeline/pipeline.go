// Package pipeline provides the dimensioning pipeline for dimchain.
//
// This package implements the complete load → project → compose flow
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// A run consists of three steps:
//
//  1. Load: Read and validate the document snapshot and settings
//  2. Pass: Run the dimensioning pass for each requested view
//  3. Aggregate: Collect per-view chains, stats, and errors into a Result
//
// Per-view results are cached by content: the same document, view, and
// settings always reuse the stored chains.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DocumentPath: "plan.json",
//	    Views:        []string{"plan-1"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	chains := result.Views[0].Chains
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dimchain/dimchain/pkg/engine"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/model"
	"github.com/dimchain/dimchain/pkg/settings"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one dimensioning run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Document input: an inline snapshot or a file path. Exactly one
	// is required; the inline document wins when both are set.
	Document     *model.Document `json:"document,omitempty"`
	DocumentPath string          `json:"document_path,omitempty"`

	// Views selects which views to dimension. Empty means all views.
	Views []string `json:"views,omitempty"`

	// Settings input: inline settings or a TOML file path. Defaults
	// apply when neither is set.
	Settings     *settings.Settings `json:"settings,omitempty"`
	SettingsPath string             `json:"settings_path,omitempty"`

	// Refresh bypasses cached pass results.
	Refresh bool `json:"refresh,omitempty"`

	// NoNudge disables the cosmetic chain nudge.
	NoNudge bool `json:"no_nudge,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Document == nil && o.DocumentPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "document or document_path is required")
	}
	if o.Settings != nil {
		if err := o.Settings.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidSettings, err, "settings")
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// effectiveSettings resolves the settings to run with, in order of
// preference: inline, file, defaults. The nudge override applies last.
func (o *Options) effectiveSettings() (settings.Settings, error) {
	var cfg settings.Settings
	switch {
	case o.Settings != nil:
		cfg = *o.Settings
	case o.SettingsPath != "":
		loaded, err := settings.Load(o.SettingsPath)
		if err != nil {
			return settings.Settings{}, err
		}
		cfg = loaded
	default:
		cfg = settings.Default()
	}
	if o.NoNudge {
		cfg.NudgeChains = false
	}
	return cfg, nil
}

// =============================================================================
// Result - Run Output
// =============================================================================

// Result contains the outputs of one dimensioning run. It carries bson
// tags so a configured store can persist it unchanged.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id" bson:"_id"`

	// DocumentName echoes the snapshot's name.
	DocumentName string `json:"document_name,omitempty" bson:"document_name,omitempty"`

	// DocumentHash and SettingsHash identify the exact inputs.
	DocumentHash string `json:"document_hash" bson:"document_hash"`
	SettingsHash string `json:"settings_hash" bson:"settings_hash"`

	// CreatedAt is the run start time in UTC.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Views holds one entry per requested view, in request order.
	Views []ViewResult `json:"views" bson:"views"`

	// Duration is the total wall time of the run.
	Duration time.Duration `json:"duration" bson:"duration"`
}

// ViewResult is the outcome of dimensioning one view.
type ViewResult struct {
	ViewID   string         `json:"view_id" bson:"view_id"`
	ViewName string         `json:"view_name,omitempty" bson:"view_name,omitempty"`
	Chains   []engine.Chain `json:"chains" bson:"chains"`
	Stats    engine.Stats   `json:"stats" bson:"stats"`

	// Error records a per-view failure (unknown view, bad frame).
	// Failed views never abort the run.
	Error string `json:"error,omitempty" bson:"error,omitempty"`

	// CacheHit reports whether the chains came from the cache.
	CacheHit bool `json:"-" bson:"-"`
}

// TotalChains sums the chains over all views.
func (r *Result) TotalChains() int {
	n := 0
	for _, v := range r.Views {
		n += len(v.Chains)
	}
	return n
}

// Failed lists the views that reported errors.
func (r *Result) Failed() []ViewResult {
	var out []ViewResult
	for _, v := range r.Views {
		if v.Error != "" {
			out = append(out, v)
		}
	}
	return out
}
