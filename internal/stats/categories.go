package stats

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCategories = errors.New("invalid category config")

type categoryFile struct {
	Categories []struct {
		Name   string   `yaml:"name"`
		Labels []string `yaml:"labels"`
	} `yaml:"categories"`
}

// Categories maps competition labels onto statistic buckets. The order of
// Names is the column order of the stats table.
type Categories struct {
	Names   []string
	byLabel map[string]string
}

// LoadCategories reads and validates a category config file.
func LoadCategories(path string) (*Categories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category config: %w", err)
	}
	return ParseCategories(data)
}

func ParseCategories(data []byte) (*Categories, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategories, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrInvalidCategories)
	}

	c := &Categories{byLabel: make(map[string]string)}
	seen := make(map[string]bool)
	for _, cat := range file.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category without a name", ErrInvalidCategories)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: category %q defined twice", ErrInvalidCategories, name)
		}
		seen[name] = true
		if len(cat.Labels) == 0 {
			return nil, fmt.Errorf("%w: category %q has no labels", ErrInvalidCategories, name)
		}

		for _, label := range cat.Labels {
			if strings.TrimSpace(label) == "" {
				return nil, fmt.Errorf("%w: empty label in category %q", ErrInvalidCategories, name)
			}
			if other, ok := c.byLabel[label]; ok {
				return nil, fmt.Errorf("%w: label %q in both %q and %q", ErrInvalidCategories, label, other, name)
			}
			c.byLabel[label] = name
		}
		c.Names = append(c.Names, name)
	}

	return c, nil
}

// CategoryOf reports the bucket for a competition label.
func (c *Categories) CategoryOf(label string) (string, bool) {
	name, ok := c.byLabel[label]
	return name, ok
}
