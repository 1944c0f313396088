// Package observability provides hooks for instrumenting ring regeneration.
//
// Libraries emit events through a process-wide registry; consumers register
// implementations at startup. The defaults are no-ops, so the core packages
// carry no dependency on any particular logging or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRingHooks(&myRingHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Ring().OnPhaseStart(ctx, "delete")
//	// ... delete elements ...
//	observability.Ring().OnPhaseComplete(ctx, "delete", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Ring Hooks
// =============================================================================

// RingHooks receives events from the ring regenerator.
type RingHooks interface {
	// Phase events
	OnPhaseStart(ctx context.Context, phase string)
	OnPhaseComplete(ctx context.Context, phase string, duration time.Duration, err error)

	// OnElementDeleted records the removal of an obsolete element.
	OnElementDeleted(ctx context.Context, id string)

	// OnElementSkipped records a deletion target that was already absent.
	OnElementSkipped(ctx context.Context, id string)

	// OnCopyStamped records a new rotated copy.
	OnCopyStamped(ctx context.Context, copyID, wrapperID string, angle float64)
}

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from document I/O.
type DocumentHooks interface {
	// OnLoad records a parsed input document.
	OnLoad(ctx context.Context, path string, elements int, duration time.Duration, err error)

	// OnSave records a written output document.
	OnSave(ctx context.Context, path string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRingHooks is a no-op implementation of RingHooks.
type NoopRingHooks struct{}

func (NoopRingHooks) OnPhaseStart(context.Context, string)                          {}
func (NoopRingHooks) OnPhaseComplete(context.Context, string, time.Duration, error) {}
func (NoopRingHooks) OnElementDeleted(context.Context, string)                      {}
func (NoopRingHooks) OnElementSkipped(context.Context, string)                      {}
func (NoopRingHooks) OnCopyStamped(context.Context, string, string, float64)        {}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnLoad(context.Context, string, int, time.Duration, error) {}
func (NoopDocumentHooks) OnSave(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	ringHooks     RingHooks     = NoopRingHooks{}
	documentHooks DocumentHooks = NoopDocumentHooks{}
	hooksMu       sync.RWMutex
)

// SetRingHooks registers custom ring hooks.
// This should be called once at application startup before any regeneration.
func SetRingHooks(h RingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ringHooks = h
	}
}

// SetDocumentHooks registers custom document hooks.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// Ring returns the registered ring hooks.
func Ring() RingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ringHooks
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	ringHooks = NoopRingHooks{}
	documentHooks = NoopDocumentHooks{}
}
