package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTeams(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clubs.txt", `"Rossi FC", "https://img.example/rossi.png"
Bianchi United,https://img.example/bianchi.png
only-one-field
too,many,fields

"Rossi FC", "https://img.example/rossi-v2.png"
`)

	teams, err := LoadTeams(path)
	require.NoError(t, err)
	assert.Equal(t, []Team{
		{Name: "Rossi FC", LogoURL: "https://img.example/rossi.png"},
		{Name: "Bianchi United", LogoURL: "https://img.example/bianchi.png"},
		{Name: "Rossi FC", LogoURL: "https://img.example/rossi-v2.png"},
	}, teams)

	logos := LogoMap(teams)
	assert.Len(t, logos, 2)
	assert.Equal(t, "https://img.example/rossi-v2.png", logos["Rossi FC"])
	assert.Equal(t, []string{"Rossi FC", "Bianchi United", "Rossi FC"}, TeamNames(teams))
}

func TestLoadCompetitions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "competitions.txt", "\"LEGA A\"\nAmichevole\n\n  \"COPPA DELLE LEGHE\"  \n")

	competitions, err := LoadCompetitions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"LEGA A", "Amichevole", "COPPA DELLE LEGHE"}, competitions)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadTeams(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = LoadCompetitions(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestCatalogCachesAfterFirstLoad(t *testing.T) {
	dir := t.TempDir()
	clubs := writeFile(t, dir, "clubs.txt", "Rossi FC,https://img.example/rossi.png\n")
	competitions := filepath.Join(dir, "competitions.txt")

	catalog := NewCatalog(clubs, competitions)

	teams, err := catalog.Teams()
	require.NoError(t, err)
	require.Len(t, teams, 1)

	// Changes on disk are not picked up until restart
	writeFile(t, dir, "clubs.txt", "Altro,https://img.example/altro.png\n")
	teams, err = catalog.Teams()
	require.NoError(t, err)
	assert.Equal(t, "Rossi FC", teams[0].Name)

	// A failed load returns an empty list and is retried later
	list, err := catalog.Competitions()
	assert.Error(t, err)
	assert.Empty(t, list)

	writeFile(t, dir, "competitions.txt", "LEGA A\n")
	list, err = catalog.Competitions()
	require.NoError(t, err)
	assert.Equal(t, []string{"LEGA A"}, list)
}
