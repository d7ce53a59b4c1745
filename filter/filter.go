package filter

import (
	"context"

	"github.com/s0up4200/ghscout/github"
)

// Filter decides whether a repository should be kept
type Filter interface {
	// Evaluate checks if a repository matches the filter criteria
	Evaluate(repo github.Repository) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Apply returns the repositories matching f, in input order
func Apply(ctx context.Context, f Filter, repos []github.Repository) ([]github.Repository, error) {
	matches := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.Evaluate(repo) {
			matches = append(matches, repo)
		}
	}
	return matches, nil
}
