package views

import (
	"github.com/AdamBeresnev/fantapes-tv/internal/httputil"
	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/AdamBeresnev/fantapes-tv/internal/stats"
)

// Page is shared by every screen: sidebar state plus inline messages.
type Page struct {
	Title    string
	SiteName string
	Nav      string
	Flash    httputil.Flash
	Errors   []string
}

func (p *Page) AddError(msg string) {
	p.Errors = append(p.Errors, msg)
}

type IndexData struct {
	Page
	Cards             []MatchCard
	Players           []string
	Competitions      []string
	PlayerFilter      string
	CompetitionFilter string
}

type SubmitData struct {
	Page
	Competitions []string
	Teams        []string
}

type StatsData struct {
	Page
	Table stats.Table
}

type TaxResult struct {
	Rate   int
	Amount string
}

type TaxData struct {
	Page
	Teams            []string
	Team             string
	AverageAge       string
	PayrollInput     string
	FormattedPayroll string
	Result           *TaxResult
}

type AdminData struct {
	Page
	Unlocked bool
	// Echoed back into every tool form, the gate is checked per request
	Password string
	Entries  []match.Entry
}
