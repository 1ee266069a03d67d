package views

import (
	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/AdamBeresnev/fantapes-tv/internal/video"
	"github.com/gosimple/slug"
)

type MatchCard struct {
	Competition      string
	CompetitionClass string
	Player1          string
	Player2          string
	Logo1            string
	Logo2            string
	EmbedURL         string
	CreatedAt        string
}

// PrepareMatchCards turns entries into list cards, in the same order.
// Entries without a recognisable video id are left out.
func PrepareMatchCards(entries []match.Entry, logos map[string]string) []MatchCard {
	cards := make([]MatchCard, 0, len(entries))
	for _, e := range entries {
		info, ok := video.GetEmbedInfo(e.VideoLink)
		if !ok {
			continue
		}
		cards = append(cards, MatchCard{
			Competition:      e.CompetitionType,
			CompetitionClass: "competition-" + slug.Make(e.CompetitionType),
			Player1:          e.Player1,
			Player2:          e.Player2,
			Logo1:            logos[e.Player1],
			Logo2:            logos[e.Player2],
			EmbedURL:         info.URL,
			CreatedAt:        e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return cards
}
