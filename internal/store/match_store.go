package store

import (
	"context"
	"strings"
	"time"

	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db  *sqlx.DB
	now func() time.Time
}

const (
	insertMatchQuery = `
		INSERT INTO match_data (youtube_link, competition_type, player1, player2, created_at)
		VALUES (:youtube_link, :competition_type, :player1, :player2, :created_at)
	`
	selectMatchesQuery = `
		SELECT COALESCE(youtube_link, '') AS youtube_link,
			COALESCE(competition_type, '') AS competition_type,
			COALESCE(player1, '') AS player1,
			COALESCE(player2, '') AS player2,
			created_at
		FROM match_data
	`
	deleteByLinkQuery = "DELETE FROM match_data WHERE youtube_link = ?"
	// instr is used over LIKE so '%' and '_' in the marker stay literal
	deleteInvalidQuery = `
		DELETE FROM match_data
		WHERE youtube_link IS NULL
		OR youtube_link = ''
		OR instr(youtube_link, ?) = 0
	`
)

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db, now: time.Now}
}

// Insert appends entry, stamping CreatedAt with the current time.
func (s *MatchStore) Insert(ctx context.Context, entry *match.Entry) error {
	entry.CreatedAt = s.now().UTC()
	_, err := s.db.NamedExecContext(ctx, insertMatchQuery, entry)
	return err
}

// ListFiltered returns matching entries, newest first. Rows sharing a
// timestamp come back in reverse insertion order.
func (s *MatchStore) ListFiltered(ctx context.Context, filter match.Filter) ([]match.Entry, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Player != nil {
		conds = append(conds, "(player1 = ? OR player2 = ?)")
		args = append(args, *filter.Player, *filter.Player)
	}
	if filter.Competition != nil {
		conds = append(conds, "competition_type = ?")
		args = append(args, *filter.Competition)
	}

	query := selectMatchesQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	entries := []match.Entry{}
	err := s.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}

// DeleteByLink removes every entry whose link equals link exactly.
func (s *MatchStore) DeleteByLink(ctx context.Context, link string) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteByLinkQuery, link)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteInvalid removes entries with an empty link or one not containing hostSubstring.
func (s *MatchStore) DeleteInvalid(ctx context.Context, hostSubstring string) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteInvalidQuery, hostSubstring)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
