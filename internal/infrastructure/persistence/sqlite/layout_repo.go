package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/logging"
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a layout repository over an open database.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

func (r *layoutRepo) SaveSnapshot(ctx context.Context, name string, snap *entity.LayoutSnapshot) error {
	log := logging.FromContext(ctx)
	if name == "" {
		return fmt.Errorf("layout name cannot be empty")
	}
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tabCount := 0
	for _, win := range snap.Windows {
		tabCount += countSnapshotTabs(win.RootNode)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO layouts (name, snapshot, window_count, tab_count, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			snapshot = excluded.snapshot,
			window_count = excluded.window_count,
			tab_count = excluded.tab_count,
			saved_at = excluded.saved_at`,
		name, string(payload), len(snap.Windows), tabCount, snap.SavedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}

	log.Debug().
		Str("name", name).
		Int("windows", len(snap.Windows)).
		Int("tabs", tabCount).
		Msg("layout snapshot saved")

	return nil
}

func (r *layoutRepo) GetSnapshot(ctx context.Context, name string) (*entity.LayoutSnapshot, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM layouts WHERE name = ?`, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", repository.ErrLayoutNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}

	var snap entity.LayoutSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode layout %q: %w", name, err)
	}
	return &snap, nil
}

func (r *layoutRepo) DeleteSnapshot(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %q", repository.ErrLayoutNotFound, name)
	}
	return nil
}

func (r *layoutRepo) ListSnapshots(ctx context.Context) ([]repository.LayoutInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, window_count, tab_count, LENGTH(snapshot), saved_at
		FROM layouts
		ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []repository.LayoutInfo
	for rows.Next() {
		var info repository.LayoutInfo
		var savedAt time.Time
		if err := rows.Scan(&info.Name, &info.WindowCount, &info.TabCount, &info.SizeBytes, &savedAt); err != nil {
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		info.SavedAt = savedAt.UTC().Format(time.RFC3339)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return infos, nil
}

// countSnapshotTabs counts tabs across the whole node tree, descending
// into split children and stage layouts.
func countSnapshotTabs(node *entity.NodeSnapshot) int {
	if node == nil {
		return 0
	}
	count := len(node.Tabs)
	for _, child := range node.Children {
		count += countSnapshotTabs(child)
	}
	for _, stage := range node.Stages {
		count += countSnapshotTabs(stage.Layout)
	}
	return count
}
