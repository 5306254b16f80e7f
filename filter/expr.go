package filter

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Item fields are only known at runtime
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
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
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against an item.
// Items that make the expression fail at runtime (missing or mistyped
// fields) do not match.
func (f *exprFilter) Evaluate(item Item) bool {
	env := createRuntimeEnvironment(item, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// Apply returns the object items that match f, in order. Non-object
// items are skipped.
func Apply(f Filter, items []any) []Item {
	var matches []Item
	for _, v := range items {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if f.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers; 500px timestamps are RFC 3339
	funcs["daysSince"] = func(ts string) int {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}

	// String helpers; expr's contains/startsWith/endsWith operators are case-sensitive
	funcs["containsText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}

	// Placeholder so expressions using hasTag compile; replaced per item
	funcs["hasTag"] = func(string) bool { return false }

	return funcs
}

// createRuntimeEnvironment exposes the item's fields as variables next to the helpers
func createRuntimeEnvironment(item Item, helpers map[string]any) map[string]any {
	fields := normalize(item).(map[string]any)

	env := make(map[string]any, len(fields)+len(helpers)+2)
	maps.Copy(env, fields)
	env["Item"] = fields

	maps.Copy(env, helpers)
	env["hasTag"] = createHasTagFunc(item["tags"])

	return env
}

func createHasTagFunc(tags any) func(string) bool {
	list, _ := tags.([]any)
	lowerTags := make([]string, 0, len(list))
	for _, t := range list {
		if s, ok := t.(string); ok {
			lowerTags = append(lowerTags, strings.ToLower(s))
		}
	}
	return func(tag string) bool {
		return slices.Contains(lowerTags, strings.ToLower(tag))
	}
}

// normalize converts json.Number values so expr can compare them as numbers
func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	default:
		return v
	}
}
