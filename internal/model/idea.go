package model

// Idea is a single startup idea template
type Idea struct {
	ID             string `json:"id" yaml:"-"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	MarketSize     string `json:"marketSize" yaml:"marketSize"`
	GrowthRate     string `json:"growthRate" yaml:"growthRate"`
	Problem        string `json:"problem" yaml:"problem"`
	Solution       string `json:"solution" yaml:"solution"`
	TargetAudience string `json:"targetAudience" yaml:"targetAudience"`
	RevenueModel   string `json:"revenueModel" yaml:"revenueModel"`
	Category       string `json:"category" yaml:"-"`
}

// IdeaCategory groups idea templates under keywords that select them
type IdeaCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Ideas    []Idea   `yaml:"ideas"`
}

// Competitor is one entry of a market analysis
type Competitor struct {
	Name          string   `json:"name" yaml:"name"`
	MarketShare   string   `json:"marketShare" yaml:"marketShare"`
	Strengths     []string `json:"strengths" yaml:"strengths"`
	Weaknesses    []string `json:"weaknesses" yaml:"weaknesses"`
	Opportunities string   `json:"opportunities" yaml:"opportunities"`
}

// MarketAnalysis accompanies generated ideas
type MarketAnalysis struct {
	MarketSize      string       `json:"marketSize" yaml:"-"`
	GrowthRate      string       `json:"growthRate" yaml:"-"`
	Competitors     []Competitor `json:"competitors" yaml:"competitors"`
	Trends          []string     `json:"trends" yaml:"trends"`
	Risks           []string     `json:"risks" yaml:"risks"`
	Recommendations []string     `json:"recommendations" yaml:"recommendations"`
}

// GenerateIdeasRequest is the body of POST /ideation/generate
type GenerateIdeasRequest struct {
	UserInput string `json:"userInput"`
	UserID    string `json:"userId"`
}

// GenerateIdeasResult is what the ideation service hands back
type GenerateIdeasResult struct {
	Ideas          []Idea          `json:"ideas"`
	MarketAnalysis *MarketAnalysis `json:"marketAnalysis"`
}
