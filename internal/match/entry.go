package match

import "time"

// Entry is one submitted match. Rows are only ever inserted or deleted.
type Entry struct {
	VideoLink       string    `db:"youtube_link"`
	CompetitionType string    `db:"competition_type"`
	Player1         string    `db:"player1"`
	Player2         string    `db:"player2"`
	CreatedAt       time.Time `db:"created_at"`
}

// Filter narrows a listing. Nil fields are not applied.
type Filter struct {
	Player      *string
	Competition *string
}
