package commands

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// SearchResult wraps an application.SearchResult with a relevance score
type SearchResult struct {
	application.SearchResult
	Score int
}

// SearchCommand searches raps by title and content
type SearchCommand struct {
	client *application.Client
	Query  string
	// Fuzzy also matches titles whose letters appear in query order
	Fuzzy bool
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(client *application.Client, query string) *SearchCommand {
	return &SearchCommand{
		client: client,
		Query:  query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if utf8.RuneCountInString(query) < 2 {
		return nil, nil
	}

	results := c.client.Search(query)

	if c.Fuzzy {
		seen := make(map[string]bool, len(results))
		for _, r := range results {
			seen[r.Rap.ID] = true
		}
		for _, rap := range c.client.Raps() {
			if seen[rap.ID] || FuzzyScore(rap.Title, query) == 0 {
				continue
			}
			result := application.SearchResult{Rap: rap, TitleMatch: true}
			if rap.FolderID != nil {
				if path, err := c.client.FolderPath(*rap.FolderID); err == nil {
					result.Path = domain.FormatPath(path)
				}
			}
			results = append(results, result)
		}
	}

	return FuzzySort(results, query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match ranks highest
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores results against query, drops the ones that don't match
// at all and sorts the rest by score descending. Equal scores keep their
// incoming order.
func FuzzySort(results []application.SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(results))

	for _, r := range results {
		best := max(FuzzyScore(r.Rap.Title, query), FuzzyScore(r.Snippet, query))
		if best > 0 {
			scored = append(scored, SearchResult{
				SearchResult: r,
				Score:        best,
			})
		}
	}

	slices.SortStableFunc(scored, func(a, b SearchResult) int {
		return b.Score - a.Score
	})

	return scored
}
