// Package pkg provides the core libraries for dimchain automatic
// dimensioning.
//
// # Overview
//
// Dimchain reads a document snapshot exported from a host model,
// projects each element into a drawing view, groups the projections
// into parallel and collinear families, and composes dimension chains
// between them. The pkg directory is organized into four main areas:
//
//  1. [engine] - Domain logic (projection, grouping, chain composition)
//  2. [model] - Document snapshot format and geometry provider
//  3. [pipeline] - Orchestration (load → pass → aggregate) with caching
//  4. [cache], [store] - Infrastructure (result caching, run persistence)
//
// # Architecture
//
// The typical data flow through dimchain:
//
//	Document snapshot (JSON)
//	         ↓
//	    [model] package (parse, validate, adapt to provider)
//	         ↓
//	    [engine] package (project → group → merge → compose)
//	         ↓
//	    [pipeline] package (per-view runs, caching, run ids)
//	         ↓
//	    JSON result / MongoDB run document
//
// # Quick Start
//
// Dimension every view of a document:
//
//	import (
//	    "context"
//	    "github.com/dimchain/dimchain/pkg/cache"
//	    "github.com/dimchain/dimchain/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    DocumentPath: "plan.json",
//	})
//
// Or drive the engine directly with custom geometry:
//
//	import (
//	    "github.com/dimchain/dimchain/pkg/engine"
//	    "github.com/dimchain/dimchain/pkg/settings"
//	)
//
//	chains, stats := engine.Run(view, provider, settings.Default())
//
// # Main Packages
//
// [engine] - The dimensioning pass. Projects elements into view space,
// classifies perpendicular elements to points, buckets by direction,
// merges collinear groups with per-class tolerances, selects reference
// representatives, and composes placed chains.
//
// [geom] - Small 2D/3D vector types shared by the engine and model.
//
// [model] - JSON document snapshot: views, elements, categories, and
// the provider adapter feeding the engine.
//
// [settings] - TOML tolerance and feature configuration.
//
// [pipeline] - Complete run orchestration used by CLI and API. Ensures
// consistent behavior across all entry points.
//
// [cache] - Pass result caching with file, Redis, and null backends.
//
// [store] - Optional run persistence in MongoDB.
//
// [errors] - Structured error codes shared by CLI and API.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [buildinfo] - Build-time version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/engine/...   # Specific package
//
// [engine]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/engine
// [geom]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/geom
// [model]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/model
// [settings]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/settings
// [pipeline]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/cache
// [store]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/store
// [errors]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/dimchain/dimchain/pkg/buildinfo
package pkg
