package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgring/pkg/observability"
)

// logHooks reports regeneration events through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.RingHooks     = (*logHooks)(nil)
	_ observability.DocumentHooks = (*logHooks)(nil)
)

// installHooks routes observability events to logger.
func installHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetRingHooks(h)
	observability.SetDocumentHooks(h)
}

func (h *logHooks) OnPhaseStart(_ context.Context, phase string) {
	h.logger.Debug("phase start", "phase", phase)
}

func (h *logHooks) OnPhaseComplete(_ context.Context, phase string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("phase failed", "phase", phase, "elapsed", d.Round(time.Microsecond), "err", err)
	}
}

func (h *logHooks) OnElementDeleted(_ context.Context, id string) {
	h.logger.Debug("deleted", "id", id)
}

func (h *logHooks) OnElementSkipped(_ context.Context, id string) {
	h.logger.Debug("not present, skipped", "id", id)
}

func (h *logHooks) OnCopyStamped(_ context.Context, copyID, wrapperID string, angle float64) {
	h.logger.Debug("stamped", "copy", copyID, "wrapper", wrapperID, "angle", angle)
}

func (h *logHooks) OnLoad(_ context.Context, path string, elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("parsed document", "path", path, "elements", elements, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnSave(_ context.Context, path string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("save failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("wrote document", "path", path, "bytes", bytes, "elapsed", d.Round(time.Microsecond))
}
