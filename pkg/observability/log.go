package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements [PipelineHooks] and [CacheHooks] by writing debug
// records to a logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, format, source string) {
	h.logger.Debug("parse started", "format", format, "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, format, source string, segments int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "format", format, "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("parse finished", "format", format, "source", source, "segments", segments, "duration", d)
}

func (h *LogHooks) OnValidateComplete(_ context.Context, warnings int, d time.Duration, err error) {
	h.logger.Debug("validate finished", "warnings", warnings, "duration", d, "ok", err == nil)
}

func (h *LogHooks) OnAssembleComplete(_ context.Context, calls int, d time.Duration, err error) {
	h.logger.Debug("assemble finished", "calls", calls, "duration", d, "ok", err == nil)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
