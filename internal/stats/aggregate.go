package stats

import (
	"sort"

	"github.com/AdamBeresnev/fantapes-tv/internal/match"
)

type PlayerRow struct {
	Player string
	// Counts lines up with Table.Categories
	Counts []int
	Total  int
}

type Table struct {
	Categories []string
	Rows       []PlayerRow
}

// Aggregate counts entries per home player and category. Entries whose
// competition has no category are skipped, and only Player1 is credited.
func Aggregate(entries []match.Entry, categories *Categories) Table {
	column := make(map[string]int, len(categories.Names))
	for i, name := range categories.Names {
		column[name] = i
	}

	counts := make(map[string][]int)
	for _, e := range entries {
		category, ok := categories.CategoryOf(e.CompetitionType)
		if !ok {
			continue
		}
		row, exists := counts[e.Player1]
		if !exists {
			row = make([]int, len(categories.Names))
			counts[e.Player1] = row
		}
		row[column[category]]++
	}

	players := make([]string, 0, len(counts))
	for p := range counts {
		players = append(players, p)
	}
	sort.Strings(players)

	table := Table{
		Categories: append([]string(nil), categories.Names...),
		Rows:       make([]PlayerRow, 0, len(players)),
	}
	for _, p := range players {
		row := PlayerRow{Player: p, Counts: counts[p]}
		for _, n := range row.Counts {
			row.Total += n
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// ByPlayer flattens the table into player -> category -> count.
func (t Table) ByPlayer() map[string]map[string]int {
	out := make(map[string]map[string]int, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]int, len(t.Categories))
		for i, name := range t.Categories {
			m[name] = row.Counts[i]
		}
		out[row.Player] = m
	}
	return out
}
