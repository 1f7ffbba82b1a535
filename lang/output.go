package lang

import (
	"log/slog"
	"strings"
)

// Output assembles the evaluated category store into a nested key/value
// mapping suitable for direct serialization. Paths are visited in
// lexicographic order, not document order, so sibling categories can be
// reordered relative to source; consumers must not rely on key order.
func (in *Interp) Output() (map[string]any, error) {
	result := make(map[string]any)

	for _, path := range sortedKeys(in.data) {
		segments := strings.Split(path, ".")
		current := result

		for _, segment := range segments[:len(segments)-1] {
			existing, ok := current[segment]
			if !ok {
				next := make(map[string]any)
				current[segment] = next
				current = next

				continue
			}

			next, ok := existing.(map[string]any)
			if !ok {
				// Unreachable through the grammar, but guarded: a path
				// segment previously created as a leaf value.
				return nil, ErrStructureConflict.
					With(
						slog.String("path", path),
						slog.String("segment", segment),
					)
			}

			current = next
		}

		final := segments[len(segments)-1]

		existing, ok := current[final]
		if !ok {
			existing = make(map[string]any)
			current[final] = existing
		}

		target, ok := existing.(map[string]any)
		if !ok {
			return nil, ErrStructureConflict.
				With(
					slog.String("path", path),
					slog.String("segment", final),
				)
		}

		items := in.data[path].items

		simplified := make(map[string]any, len(items))
		for name, values := range items {
			simplified[name] = simplifyValues(values)
		}

		if err := deepMerge(target, simplified, path); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func simplifyValues(values []Value) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v.Simplify())
	}

	return out
}

// deepMerge merges source into target. Nested mappings merge recursively;
// an item list colliding with an existing nested level is a structure
// conflict.
func deepMerge(target, source map[string]any, path string) error {
	for key, value := range source {
		existing, ok := target[key]
		if !ok {
			target[key] = value

			continue
		}

		existingMap, existingIsMap := existing.(map[string]any)
		valueMap, valueIsMap := value.(map[string]any)

		switch {
		case existingIsMap && valueIsMap:
			if err := deepMerge(existingMap, valueMap, path); err != nil {
				return err
			}

		case existingIsMap != valueIsMap:
			return ErrStructureConflict.
				With(
					slog.String("path", path),
					slog.String("name", key),
				)

		default:
			target[key] = value
		}
	}

	return nil
}
