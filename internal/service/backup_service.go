package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type BackupService struct {
	db      *sqlx.DB
	tempDir string
}

func NewBackupService(db *sqlx.DB) *BackupService {
	return &BackupService{db: db, tempDir: os.TempDir()}
}

// WriteSnapshot copies a consistent snapshot of the database to w.
// VACUUM INTO gives a single self-contained file even in WAL mode.
// Session rows are emptied from the copy, only match data leaves the server.
func (s *BackupService) WriteSnapshot(ctx context.Context, w io.Writer) (int64, error) {
	path := filepath.Join(s.tempDir, "snapshot-"+uuid.NewString()+".db")
	defer os.Remove(path)

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return 0, fmt.Errorf("failed to snapshot database: %w", err)
	}
	if err := scrubSnapshot(ctx, path); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return n, fmt.Errorf("failed to stream snapshot: %w", err)
	}
	return n, nil
}

// scrubSnapshot drops session tokens from the copy. The table itself stays so
// the file still matches the migration version recorded in it.
func scrubSnapshot(ctx context.Context, path string) error {
	snapshot, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer snapshot.Close()

	if _, err := snapshot.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions from snapshot: %w", err)
	}
	// Rewrite the file so deleted rows do not linger in free pages
	if _, err := snapshot.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to compact snapshot: %w", err)
	}
	return snapshot.Close()
}

// DownloadName builds the attachment name, e.g. fantapesamici-tv-20241019-2130.db
func DownloadName(siteName string, at time.Time) string {
	base := slug.Make(siteName)
	if base == "" {
		base = "matches"
	}
	return base + "-" + at.Format("20060102-1504") + ".db"
}
