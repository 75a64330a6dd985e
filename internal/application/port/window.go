package port

import (
	"context"

	"github.com/bnema/stagedock/internal/domain/entity"
)

// WindowHost is the live window registry the reconciler drives. The host
// owns the real windows and pane views; the reconciler only tells it which
// windows to open, close, or re-apply.
//
// ApplyWindow receives the full target tree for a window; the host is
// expected to rebuild only the changed subtrees, keeping panels whose
// subtree is structurally identical alive (see ui/layout.Materializer).
type WindowHost interface {
	// LiveLayout re-queries the currently materialized layout.
	LiveLayout() *entity.Layout

	// OpenWindow creates a window absent from the live layout.
	OpenWindow(ctx context.Context, win *entity.Window) error

	// ApplyWindow reconciles an existing window to the target tree.
	ApplyWindow(ctx context.Context, win *entity.Window) error

	// CloseWindow tears down a window absent from the target layout.
	CloseWindow(ctx context.Context, id entity.WindowID) error
}
