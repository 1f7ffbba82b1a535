package lang

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxIncludeDepth bounds the include chain length so that a long
// non-cyclic include diamond fails with a resource-limit error instead of
// exhausting the call stack.
const DefaultMaxIncludeDepth = 32

// resolver flattens include directives into the syntax tree. It is a
// separate pass over the parsed tree: the grammar never touches the file
// system, and this pass never touches the grammar.
type resolver struct {
	chain      map[string]struct{} // canonical paths open along this chain
	depth      int
	maxDepth   int
	maxNesting int
}

// resolveIncludes returns a copy of doc with every IncludeStmt replaced
// in-place by the included file's top-level members, preserving relative
// order. baseDir is the directory of the file doc was parsed from; chain
// holds the canonical paths of every file currently open along the include
// chain, including doc's own.
func (rs *resolver) resolveIncludes(doc *Document, baseDir string) (*Document, error) {
	members, err := rs.resolveMembers(doc.Members, baseDir)
	if err != nil {
		return nil, err
	}

	return &Document{Members: members}, nil
}

func (rs *resolver) resolveMembers(members []Member, baseDir string) ([]Member, error) {
	out := make([]Member, 0, len(members))

	for _, m := range members {
		switch m := m.(type) {
		case *IncludeStmt:
			spliced, err := rs.include(m, baseDir)
			if err != nil {
				return nil, err
			}

			out = append(out, spliced...)

		case *Category:
			resolved, err := rs.resolveMembers(m.Members, baseDir)
			if err != nil {
				return nil, err
			}

			out = append(out, &Category{
				pos:     m.pos,
				Name:    m.Name,
				Members: resolved,
			})

		default:
			out = append(out, m)
		}
	}

	return out, nil
}

// include loads, lexes, parses, and recursively resolves the target file,
// returning its top-level members for splicing at the directive's position.
func (rs *resolver) include(inc *IncludeStmt, baseDir string) ([]Member, error) {
	line, col := inc.Pos()

	if rs.depth >= rs.maxDepth {
		return nil, ErrMaxIncludeDepth.
			With(slog.Int("max_depth", rs.maxDepth)).
			At(line, col)
	}

	target, err := safeIncludePath(baseDir, inc.Path)
	if err != nil {
		return nil, WrapError(err).
			With(slog.String("path", inc.Path)).
			At(line, col)
	}

	if _, err := os.Stat(target); err != nil {
		return nil, ErrIncludeNotFound.
			With(slog.String("path", inc.Path)).
			At(line, col)
	}

	// The chain is relative to this include path, not a global cache:
	// diamond-shaped re-includes of the same file from unrelated branches
	// are allowed and re-parsed independently.
	if _, open := rs.chain[target]; open {
		return nil, ErrCircularInclude.
			With(slog.String("path", inc.Path)).
			At(line, col)
	}

	doc, err := parseIncludeFile(target, rs.maxNesting)
	if err != nil {
		return nil, includeContext(err, inc.Path)
	}

	child := &resolver{
		chain:      chainWith(rs.chain, target),
		depth:      rs.depth + 1,
		maxDepth:   rs.maxDepth,
		maxNesting: rs.maxNesting,
	}

	resolved, err := child.resolveIncludes(doc, filepath.Dir(target))
	if err != nil {
		return nil, err
	}

	return resolved.Members, nil
}

// safeIncludePath resolves path relative to baseDir and verifies the
// canonical result stays within (or equals) baseDir.
func safeIncludePath(baseDir, path string) (string, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", WrapError(err)
	}

	target := filepath.Clean(filepath.Join(baseAbs, path))

	if target == baseAbs {
		return target, nil
	}

	if !strings.HasPrefix(target, baseAbs+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return target, nil
}

// includeContext annotates an error from an included file with that file's
// path so the reported position is attributable.
func includeContext(err error, path string) error {
	return WrapError(err).With(slog.String("include", path))
}

// chainWith copies the chain set and adds key, so sibling includes never
// observe each other's open files.
func chainWith(m map[string]struct{}, key string) map[string]struct{} {
	out := maps.Clone(m)
	if out == nil {
		out = make(map[string]struct{}, 1)
	}

	out[key] = struct{}{}

	return out
}
