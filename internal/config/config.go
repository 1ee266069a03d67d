package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Used when ADMIN_PASSWORD is not set.
const defaultAdminPassword = "fantapesamici"

type Config struct {
	Addr             string
	DBPath           string
	MigrationsDir    string
	ClubsFile        string
	CompetitionsFile string
	CategoriesFile   string
	// Links not containing this are removed by the admin prune tool
	VideoHostMarker string
	AdminPassword   string
	SessionLifetime time.Duration
	SiteName        string
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:             getString("ADDR", ":8080"),
		DBPath:           getString("DB_PATH", "matches.db"),
		MigrationsDir:    getString("MIGRATIONS_DIR", "migrations"),
		ClubsFile:        getString("CLUBS_FILE", "data/clubs.txt"),
		CompetitionsFile: getString("COMPETITIONS_FILE", "data/competitions.txt"),
		CategoriesFile:   getString("CATEGORIES_FILE", "config/categories.yaml"),
		VideoHostMarker:  getString("VIDEO_HOST_MARKER", "youtu"),
		AdminPassword:    getString("ADMIN_PASSWORD", defaultAdminPassword),
		SiteName:         getString("SITE_NAME", "FantaPesAmici TV"),
	}

	var err error
	cfg.SessionLifetime, err = getDuration("SESSION_LIFETIME", 24*time.Hour)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
