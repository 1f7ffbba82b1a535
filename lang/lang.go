package lang

import (
	"os"
	"path/filepath"

	"github.com/zovlang/zov/log"
)

// config collects the tunable behavior of one parse or evaluate call.
type config struct {
	precise    bool
	maxInclude int
	maxNesting int
	lookupEnv  func(string) (string, bool)
	logger     log.Logger
}

// Option configures parsing and evaluation.
type Option func(*config)

// WithPrecise selects arbitrary-precision decimal arithmetic for this run.
// Decimals are constructed from printed forms, so computation chains avoid
// binary floating-point rounding.
func WithPrecise(precise bool) Option {
	return func(c *config) { c.precise = precise }
}

// WithMaxIncludeDepth overrides [DefaultMaxIncludeDepth].
func WithMaxIncludeDepth(depth int) Option {
	return func(c *config) { c.maxInclude = depth }
}

// WithMaxNestingDepth overrides [DefaultMaxNestingDepth] for categories and
// expressions.
func WithMaxNestingDepth(depth int) Option {
	return func(c *config) { c.maxNesting = depth }
}

// WithLookupEnv replaces the process environment lookup used by the env()
// builtin. Primarily a test seam.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(c *config) { c.lookupEnv = lookup }
}

// WithLogger routes interpreter diagnostics to the given logger.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func makeConfig(opts ...Option) config {
	cfg := config{
		maxInclude: DefaultMaxIncludeDepth,
		maxNesting: DefaultMaxNestingDepth,
		lookupEnv:  os.LookupEnv,
		logger:     log.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// ParseSource lexes and parses src without resolving include directives,
// leaving them in place in the returned tree.
func ParseSource(src string, opts ...Option) (*Document, error) {
	cfg := makeConfig(opts...)

	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	return newParser(toks, cfg.maxNesting).parseDocument()
}

// ParseString lexes and parses src without any include base: include
// directives resolve relative to the current working directory.
func ParseString(src string, opts ...Option) (*Document, error) {
	cfg := makeConfig(opts...)

	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	doc, err := newParser(toks, cfg.maxNesting).parseDocument()
	if err != nil {
		return nil, err
	}

	rs := &resolver{
		chain:      map[string]struct{}{},
		maxDepth:   cfg.maxInclude,
		maxNesting: cfg.maxNesting,
	}

	return rs.resolveIncludes(doc, ".")
}

// ParseFile parses the file at path plus all transitively included files
// into a fully-resolved tree. Includes resolve relative to the directory of
// the file that names them and may not escape it.
func ParseFile(path string, opts ...Option) (*Document, error) {
	cfg := makeConfig(opts...)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, WrapError(err)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, WrapError(err)
	}

	toks, err := Lex(string(src))
	if err != nil {
		return nil, err
	}

	doc, err := newParser(toks, cfg.maxNesting).parseDocument()
	if err != nil {
		return nil, err
	}

	rs := &resolver{
		chain:      map[string]struct{}{abs: {}},
		maxDepth:   cfg.maxInclude,
		maxNesting: cfg.maxNesting,
	}

	return rs.resolveIncludes(doc, filepath.Dir(abs))
}

// Load parses and evaluates the file at path, returning the merged output
// mapping: string keys, values that are numbers, booleans, nil, strings, or
// nested mappings.
func Load(path string, opts ...Option) (map[string]any, error) {
	doc, err := ParseFile(path, opts...)
	if err != nil {
		return nil, err
	}

	in := NewInterp(opts...)
	if err := in.Eval(doc); err != nil {
		return nil, err
	}

	return in.Output()
}

// LoadString parses and evaluates src, returning the merged output mapping.
func LoadString(src string, opts ...Option) (map[string]any, error) {
	doc, err := ParseString(src, opts...)
	if err != nil {
		return nil, err
	}

	in := NewInterp(opts...)
	if err := in.Eval(doc); err != nil {
		return nil, err
	}

	return in.Output()
}
