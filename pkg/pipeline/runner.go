package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dimchain/dimchain/pkg/cache"
	"github.com/dimchain/dimchain/pkg/engine"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/model"
	"github.com/dimchain/dimchain/pkg/observability"
	"github.com/dimchain/dimchain/pkg/settings"
)

// Runner encapsulates run execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedPass is the serialized form of one view's pass result.
type cachedPass struct {
	Chains []engine.Chain `json:"chains"`
	Stats  engine.Stats   `json:"stats"`
}

// Execute runs the complete load → pass → aggregate flow with caching.
// View-level failures (unknown id, degenerate frame) are recorded on
// the view's entry; only input-level failures abort the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	start := time.Now()

	doc, err := r.loadDocument(opts)
	if err != nil {
		return nil, err
	}
	cfg, err := opts.effectiveSettings()
	if err != nil {
		return nil, err
	}

	docData, err := model.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize document")
	}
	docHash := cache.Hash(docData)
	settingsHash, err := hashSettings(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:        uuid.NewString(),
		DocumentName: doc.Name,
		DocumentHash: docHash,
		SettingsHash: settingsHash,
		CreatedAt:    start.UTC(),
	}

	viewIDs := opts.Views
	if len(viewIDs) == 0 {
		viewIDs = doc.ViewIDs()
	}
	provider := model.NewProvider(doc)

	for _, id := range viewIDs {
		vr := r.runView(ctx, doc, provider, id, cfg, docHash, settingsHash, opts.Refresh)
		result.Views = append(result.Views, vr)
		if vr.Error != "" {
			logger.Warn("view failed", "view", id, "error", vr.Error)
			continue
		}
		logger.Info("dimensioned view",
			"view", id,
			"chains", len(vr.Chains),
			"candidates", vr.Stats.Candidates,
			"skipped", vr.Stats.Skipped,
			"cached", vr.CacheHit)
	}

	result.Duration = time.Since(start)
	logger.Info("run complete",
		"run", result.RunID,
		"views", len(result.Views),
		"chains", result.TotalChains(),
		"duration", result.Duration)

	return result, nil
}

// runView dimensions a single view, serving from the cache when the
// same document, view, and settings were seen before.
func (r *Runner) runView(ctx context.Context, doc *model.Document, provider *model.Provider,
	viewID string, cfg settings.Settings, docHash, settingsHash string, refresh bool) ViewResult {

	vr := ViewResult{ViewID: viewID}

	mv, ok := doc.FindView(viewID)
	if !ok {
		vr.Error = apperrors.New(apperrors.ErrCodeViewNotFound, "no view %q in document", viewID).Error()
		return vr
	}
	vr.ViewName = mv.Name

	view, err := mv.Context()
	if err != nil {
		vr.Error = err.Error()
		return vr
	}

	key := r.Keyer.PassKey(docHash, viewID, cache.PassKeyOpts{SettingsHash: settingsHash})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedPass
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "pass")
				vr.Chains = cached.Chains
				vr.Stats = cached.Stats
				vr.CacheHit = true
				return vr
			}
		}
		observability.Cache().OnCacheMiss(ctx, "pass")
	}

	passStart := time.Now()
	observability.Pass().OnCollectStart(ctx, viewID)
	chains, stats := engine.Run(view, provider, cfg)
	elapsed := time.Since(passStart)
	observability.Pass().OnCollectComplete(ctx, viewID, stats.Candidates, stats.Skipped, elapsed, nil)
	observability.Pass().OnGroupComplete(ctx, viewID, stats.Buckets, stats.Groups, elapsed, nil)
	observability.Pass().OnComposeComplete(ctx, viewID, stats.Chains, elapsed, nil)

	vr.Chains = chains
	vr.Stats = stats

	if data, err := json.Marshal(cachedPass{Chains: chains, Stats: stats}); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLPass) == nil {
			observability.Cache().OnCacheSet(ctx, "pass", len(data))
		}
	}

	return vr
}

// loadDocument resolves the document from the options.
func (r *Runner) loadDocument(opts Options) (*model.Document, error) {
	if opts.Document != nil {
		if err := opts.Document.Validate(); err != nil {
			return nil, err
		}
		return opts.Document, nil
	}
	doc, err := model.ReadFile(opts.DocumentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "document %s", opts.DocumentPath)
		}
		return nil, err
	}
	return doc, nil
}

// hashSettings derives the cache key component for the settings.
func hashSettings(cfg settings.Settings) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize settings")
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
