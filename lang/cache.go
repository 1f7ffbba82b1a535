package lang

import (
	"os"
	"sync"

	"github.com/zeebo/xxh3"
)

// includeCache stores parsed include targets keyed by path and nesting
// limit. Diamond include graphs may parse the same file from unrelated
// branches; the cycle check is chain-relative, but the lex and parse stages
// are pure functions of the file content, so their result is shared.
//
// Entries are validated against the current content hash on every hit, so a
// file edited between loads is re-parsed rather than served stale.
var includeCache sync.Map

type cacheKey struct {
	path       string
	maxNesting int
}

type cacheEntry struct {
	hash uint64
	doc  *Document
}

// parseIncludeFile reads, lexes, and parses the file at the canonical path
// target. The returned document is shared across include sites and must not
// be mutated; resolveMembers copies every node it rewrites.
func parseIncludeFile(target string, maxNesting int) (*Document, error) {
	src, err := os.ReadFile(target)
	if err != nil {
		return nil, WrapError(err)
	}

	key := cacheKey{path: target, maxNesting: maxNesting}
	sum := xxh3.Hash(src)

	if v, ok := includeCache.Load(key); ok {
		if entry := v.(*cacheEntry); entry.hash == sum {
			return entry.doc, nil
		}
	}

	toks, err := Lex(string(src))
	if err != nil {
		return nil, err
	}

	doc, err := newParser(toks, maxNesting).parseDocument()
	if err != nil {
		return nil, err
	}

	includeCache.Store(key, &cacheEntry{hash: sum, doc: doc})

	return doc, nil
}

// ClearCache drops all cached include parses. Useful for tests.
func ClearCache() {
	includeCache.Range(func(key, _ any) bool {
		includeCache.Delete(key)

		return true
	})
}
