package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/ghscout/github"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures an expr compiler
type CompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ExprCompiler implements Compiler for expr-based filters over repositories
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against a zero repository so field names and types are checked
	program, err := expr.Compile(expression,
		expr.Env(c.environment(github.Repository{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func (c *ExprCompiler) environment(repo github.Repository) map[string]any {
	return createRuntimeEnvironment(repo, c.helperFuncs)
}

// Evaluate evaluates the filter against a repository. Runtime errors count
// as a non-match.
func (f *exprFilter) Evaluate(repo github.Repository) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(repo, f.helpers))
	if err != nil {
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helper functions available to expressions.
// The expr operators contains, startsWith and endsWith stay available and
// are case sensitive; these helpers ignore case.
func createHelperFunctions() map[string]any {
	return map[string]any{
		"hasSubstr": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// createRuntimeEnvironment exposes the repository fields to an expression
func createRuntimeEnvironment(repo github.Repository, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+12)
	maps.Copy(env, helpers)

	env["ID"] = repo.ID
	env["Name"] = repo.Name
	env["FullName"] = stringValue(repo.FullName)
	env["Owner"] = repo.OwnerLogin()
	env["Description"] = stringValue(repo.Description)
	env["Language"] = stringValue(repo.Language)
	env["Visibility"] = repo.Visibility
	env["Stars"] = repo.Stars()
	env["Forks"] = repo.Forks()
	env["Watchers"] = intValue(repo.WatchersCount)
	env["OpenIssues"] = intValue(repo.OpenIssuesCount)

	return env
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
