package repository

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"founderhub/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/ideas.yaml
var defaultIdeasYAML []byte

// IdeaCatalog is a read-only source of idea templates
type IdeaCatalog interface {
	Categories() []model.IdeaCategory
	MarketAnalysisTemplate() model.MarketAnalysis
}

type catalogFile struct {
	Categories     []model.IdeaCategory `yaml:"categories"`
	MarketAnalysis model.MarketAnalysis `yaml:"marketAnalysis"`
}

type ideaCatalog struct {
	categories []model.IdeaCategory
	analysis   model.MarketAnalysis
}

// NewIdeaCatalog parses a YAML catalog document
func NewIdeaCatalog(data []byte) (IdeaCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse idea catalog: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, errors.New("idea catalog has no categories")
	}
	for _, c := range f.Categories {
		if c.Name == "" || len(c.Ideas) == 0 {
			return nil, fmt.Errorf("idea catalog category %q is empty", c.Name)
		}
	}
	return &ideaCatalog{categories: f.Categories, analysis: f.MarketAnalysis}, nil
}

// LoadIdeaCatalog reads the catalog from path, or the embedded default when path is empty
func LoadIdeaCatalog(path string) (IdeaCatalog, error) {
	if path == "" {
		return NewIdeaCatalog(defaultIdeasYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read idea catalog %s: %w", path, err)
	}
	return NewIdeaCatalog(data)
}

func (c *ideaCatalog) Categories() []model.IdeaCategory {
	return c.categories
}

func (c *ideaCatalog) MarketAnalysisTemplate() model.MarketAnalysis {
	return c.analysis
}
