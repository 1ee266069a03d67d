package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/AdamBeresnev/fantapes-tv/internal/utils"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// Every new connection would get its own empty in-memory database
	database.SetMaxOpenConns(1)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

// fixedClock hands out timestamps one second apart starting at base
func fixedClock(base time.Time) func() time.Time {
	next := base
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func seedMatches(t *testing.T, s *MatchStore, entries ...match.Entry) {
	t.Helper()
	for i := range entries {
		require.NoError(t, s.Insert(context.Background(), &entries[i]))
	}
}

func TestInsertAndListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	base := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	s.now = fixedClock(base)

	seedMatches(t, s,
		match.Entry{VideoLink: "https://www.youtube.com/watch?v=aaa", CompetitionType: "LEGA A", Player1: "Rossi", Player2: "Bianchi"},
		match.Entry{VideoLink: "https://youtu.be/bbb", CompetitionType: "Amichevole", Player1: "Verdi", Player2: "Rossi"},
		match.Entry{VideoLink: "https://www.youtube.com/watch?v=ccc", CompetitionType: "LEGA B", Player1: "Neri", Player2: "Gialli"},
	)

	entries, err := s.ListFiltered(context.Background(), match.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "https://www.youtube.com/watch?v=ccc", entries[0].VideoLink)
	assert.Equal(t, "https://youtu.be/bbb", entries[1].VideoLink)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaa", entries[2].VideoLink)

	assert.Equal(t, "LEGA B", entries[0].CompetitionType)
	assert.Equal(t, "Neri", entries[0].Player1)
	assert.Equal(t, "Gialli", entries[0].Player2)
	assert.WithinDuration(t, base.Add(2*time.Second), entries[0].CreatedAt, time.Millisecond)
}

func TestListSameTimestampUsesInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	frozen := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	seedMatches(t, s,
		match.Entry{VideoLink: "first", Player1: "A", Player2: "B"},
		match.Entry{VideoLink: "second", Player1: "A", Player2: "B"},
	)

	entries, err := s.ListFiltered(context.Background(), match.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].VideoLink)
	assert.Equal(t, "first", entries[1].VideoLink)
}

func TestListFiltered(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	s.now = fixedClock(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))

	seedMatches(t, s,
		match.Entry{VideoLink: "l1", CompetitionType: "LEGA A", Player1: "Rossi", Player2: "Bianchi"},
		match.Entry{VideoLink: "l2", CompetitionType: "Amichevole", Player1: "Verdi", Player2: "Rossi"},
		match.Entry{VideoLink: "l3", CompetitionType: "LEGA A", Player1: "Neri", Player2: "Gialli"},
		match.Entry{VideoLink: "l4", CompetitionType: "LEGA A", Player1: "Bianchi", Player2: "Neri"},
	)

	testCases := []struct {
		name     string
		filter   match.Filter
		expected []string
	}{
		{
			name:     "No filter",
			filter:   match.Filter{},
			expected: []string{"l4", "l3", "l2", "l1"},
		},
		{
			name:     "Player on either side",
			filter:   match.Filter{Player: utils.StringOrNil("Rossi")},
			expected: []string{"l2", "l1"},
		},
		{
			name:     "Competition only",
			filter:   match.Filter{Competition: utils.StringOrNil("LEGA A")},
			expected: []string{"l4", "l3", "l1"},
		},
		{
			name:     "Player and competition",
			filter:   match.Filter{Player: utils.StringOrNil("Neri"), Competition: utils.StringOrNil("LEGA A")},
			expected: []string{"l4", "l3"},
		},
		{
			name:     "Unknown player",
			filter:   match.Filter{Player: utils.StringOrNil("Nessuno")},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := s.ListFiltered(context.Background(), tc.filter)
			require.NoError(t, err)

			links := make([]string, 0, len(entries))
			for _, e := range entries {
				links = append(links, e.VideoLink)
				if tc.filter.Player != nil {
					assert.Contains(t, []string{e.Player1, e.Player2}, *tc.filter.Player)
				}
			}
			assert.Equal(t, tc.expected, links)
		})
	}
}

func TestDeleteByLink(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	seedMatches(t, s,
		match.Entry{VideoLink: "https://youtu.be/dup", Player1: "A", Player2: "B"},
		match.Entry{VideoLink: "https://youtu.be/dup", Player1: "C", Player2: "D"},
		match.Entry{VideoLink: "https://youtu.be/keep", Player1: "E", Player2: "F"},
	)

	removed, err := s.DeleteByLink(context.Background(), "https://youtu.be/dup")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	// Nothing left to match is still a success
	removed, err = s.DeleteByLink(context.Background(), "https://youtu.be/dup")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	entries, err := s.ListFiltered(context.Background(), match.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://youtu.be/keep", entries[0].VideoLink)
}

func TestDeleteInvalid(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	seedMatches(t, s,
		match.Entry{VideoLink: "", Player1: "A", Player2: "B"},
		match.Entry{VideoLink: "https://vimeo.com/123", Player1: "C", Player2: "D"},
		match.Entry{VideoLink: "https://www.youtube.com/watch?v=ok", Player1: "E", Player2: "F"},
		match.Entry{VideoLink: "https://youtu.be/ok2", Player1: "G", Player2: "H"},
	)
	_, err := db.Exec("INSERT INTO match_data (youtube_link, competition_type, player1, player2) VALUES (NULL, 'LEGA A', 'I', 'J')")
	require.NoError(t, err)

	removed, err := s.DeleteInvalid(context.Background(), "youtu")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	entries, err := s.ListFiltered(context.Background(), match.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Contains(t, e.VideoLink, "youtu")
	}
}

func TestDeleteInvalidTreatsMarkerLiterally(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	seedMatches(t, s,
		match.Entry{VideoLink: "https://youtu.be/abc", Player1: "A", Player2: "B"},
	)

	removed, err := s.DeleteInvalid(context.Background(), "you%")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
