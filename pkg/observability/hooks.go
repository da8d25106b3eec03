// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks at
// startup to receive events about input loading, style resolution, rendering
// and artifact writes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages do not
// import any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetArtifactHooks(&myArtifactHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	// ... read the file ...
//	observability.Pipeline().OnLoadComplete(ctx, path, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the plotting pipeline.
type PipelineHooks interface {
	// Load events, once per input file
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, rows int, duration time.Duration, err error)

	// OnResolveComplete fires once the draw sequence is known.
	OnResolveComplete(ctx context.Context, entities, plotted, layers int, duration time.Duration)

	// Render events, once per output format
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Artifact Hooks
// =============================================================================

// ArtifactHooks receives events from output writing.
type ArtifactHooks interface {
	// OnNameChosen records the base name chosen for a run.
	OnNameChosen(ctx context.Context, requested, chosen string)

	// OnWrite records a file written to disk.
	OnWrite(ctx context.Context, path string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, int, int, int, time.Duration)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopArtifactHooks is a no-op implementation of ArtifactHooks.
type NoopArtifactHooks struct{}

func (NoopArtifactHooks) OnNameChosen(context.Context, string, string) {}
func (NoopArtifactHooks) OnWrite(context.Context, string, int)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	artifactHooks ArtifactHooks = NoopArtifactHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetArtifactHooks registers custom artifact hooks.
func SetArtifactHooks(h ArtifactHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		artifactHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Artifact returns the registered artifact hooks.
func Artifact() ArtifactHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return artifactHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	artifactHooks = NoopArtifactHooks{}
}
