package refdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
)

type Team struct {
	Name    string
	LogoURL string
}

// Catalog serves the team and competition lists. A successful load is kept
// for the lifetime of the process; a failed one is retried on the next call.
type Catalog struct {
	clubsPath        string
	competitionsPath string

	mu           sync.Mutex
	teams        []Team
	competitions []string
}

func NewCatalog(clubsPath, competitionsPath string) *Catalog {
	return &Catalog{clubsPath: clubsPath, competitionsPath: competitionsPath}
}

func (c *Catalog) Teams() ([]Team, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.teams == nil {
		teams, err := LoadTeams(c.clubsPath)
		if err != nil {
			return []Team{}, err
		}
		c.teams = teams
	}
	return c.teams, nil
}

func (c *Catalog) Competitions() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.competitions == nil {
		competitions, err := LoadCompetitions(c.competitionsPath)
		if err != nil {
			return []string{}, err
		}
		c.competitions = competitions
	}
	return c.competitions, nil
}

// LogoMap indexes logos by team name; later duplicates win.
func LogoMap(teams []Team) map[string]string {
	logos := make(map[string]string, len(teams))
	for _, t := range teams {
		logos[t.Name] = t.LogoURL
	}
	return logos
}

func TeamNames(teams []Team) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names
}

// LoadTeams reads "name, logoUrl" lines. Lines without exactly two fields are skipped.
func LoadTeams(path string) ([]Team, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	teams := []Team{}
	for _, line := range lines {
		r := csv.NewReader(strings.NewReader(line))
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		fields, err := r.Read()
		if err != nil || len(fields) != 2 {
			continue
		}
		teams = append(teams, Team{
			Name:    unquote(fields[0]),
			LogoURL: unquote(fields[1]),
		})
	}
	return teams, nil
}

// LoadCompetitions reads one label per line. Blank lines are skipped.
func LoadCompetitions(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load competitions: %w", err)
	}

	competitions := []string{}
	for _, line := range lines {
		if label := unquote(line); label != "" {
			competitions = append(competitions, label)
		}
	}
	return competitions, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
