// Package observability provides hooks for timing and logging pipeline stages.
//
// The hooks let a caller observe parsing, validation, assembly and cache
// traffic without the libraries depending on a particular backend.
// Libraries call the registered hooks; the default hooks do nothing.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    observability.SetCacheHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries emit events around each stage:
//
//	observability.Pipeline().OnParseStart(ctx, "legacy", path)
//	// ... parse ...
//	observability.Pipeline().OnParseComplete(ctx, "legacy", path, len(m.Segments), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the input pipeline.
type PipelineHooks interface {
	// OnParseStart and OnParseComplete bracket the parse of one source.
	OnParseStart(ctx context.Context, format, source string)
	OnParseComplete(ctx context.Context, format, source string, segments int, duration time.Duration, err error)

	// OnValidateComplete reports a validation pass and its warning count.
	OnValidateComplete(ctx context.Context, warnings int, duration time.Duration, err error)

	// OnAssembleComplete reports an assembly pass and its builder call count.
	OnAssembleComplete(ctx context.Context, calls int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// keyType is "model" or "plan".
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet reports a write of size encoded bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string, string) {}

func (NoopPipelineHooks) OnParseComplete(context.Context, string, string, int, time.Duration, error) {}

func (NoopPipelineHooks) OnValidateComplete(context.Context, int, time.Duration, error) {}

func (NoopPipelineHooks) OnAssembleComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// registry is replaced as a whole on every change, so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { Reset() }

func update(fn func(r *registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	update(func(r *registry) { r.pipeline = h })
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	update(func(r *registry) { r.cache = h })
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// Reset restores the no-op hooks.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}})
}
