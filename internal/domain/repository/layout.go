// Package repository defines persistence interfaces over domain entities.
package repository

import (
	"context"
	"errors"

	"github.com/bnema/stagedock/internal/domain/entity"
)

// ErrLayoutNotFound is returned when a named layout does not exist.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutInfo summarizes a saved layout for listing without decoding the
// full snapshot.
type LayoutInfo struct {
	Name        string
	WindowCount int
	TabCount    int
	SizeBytes   int64
	SavedAt     string
}

// LayoutRepository persists layout snapshots.
type LayoutRepository interface {
	// SaveSnapshot saves or replaces a named layout snapshot.
	SaveSnapshot(ctx context.Context, name string, snap *entity.LayoutSnapshot) error

	// GetSnapshot returns the named snapshot.
	GetSnapshot(ctx context.Context, name string) (*entity.LayoutSnapshot, error)

	// DeleteSnapshot removes a named snapshot.
	DeleteSnapshot(ctx context.Context, name string) error

	// ListSnapshots returns summaries of all saved layouts, most recent first.
	ListSnapshots(ctx context.Context) ([]LayoutInfo, error)
}
