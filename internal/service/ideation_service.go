package service

import (
	"context"
	"errors"
	"strings"

	"founderhub/internal/model"
	"founderhub/internal/repository"

	"github.com/google/uuid"
)

// MaxIdeas caps the number of ideas returned per request
const MaxIdeas = 3

var ErrMissingUserInput = errors.New("user input is required")

// IdeationService matches free text against the idea catalog
type IdeationService interface {
	Generate(ctx context.Context, userInput string) (*model.GenerateIdeasResult, error)
}

type ideationService struct {
	catalog repository.IdeaCatalog
}

// NewIdeationService creates a new IdeationService
func NewIdeationService(catalog repository.IdeaCatalog) IdeationService {
	return &ideationService{catalog: catalog}
}

func (s *ideationService) Generate(_ context.Context, userInput string) (*model.GenerateIdeasResult, error) {
	if userInput == "" {
		return nil, ErrMissingUserInput
	}

	categories := s.selectCategories(strings.ToLower(userInput))

	ideas := make([]model.Idea, 0, MaxIdeas)
	for _, category := range categories {
		for _, idea := range category.Ideas {
			if len(ideas) == MaxIdeas {
				break
			}
			idea.ID = uuid.NewString()
			idea.Category = category.Name
			ideas = append(ideas, idea)
		}
	}

	analysis := s.catalog.MarketAnalysisTemplate()
	if len(ideas) > 0 {
		analysis.MarketSize = ideas[0].MarketSize
		analysis.GrowthRate = ideas[0].GrowthRate
	}

	return &model.GenerateIdeasResult{Ideas: ideas, MarketAnalysis: &analysis}, nil
}

// selectCategories returns the first category with a keyword hit, or all of them
func (s *ideationService) selectCategories(input string) []model.IdeaCategory {
	all := s.catalog.Categories()
	for _, category := range all {
		for _, keyword := range category.Keywords {
			if strings.Contains(input, strings.ToLower(keyword)) {
				return []model.IdeaCategory{category}
			}
		}
	}
	return all
}
