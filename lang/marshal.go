package lang

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
)

// EncodeJSON writes tree to w as indented JSON. The tree is the merged
// output mapping produced by [Interp.Output] or [Load].
func EncodeJSON(w io.Writer, tree map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(tree); err != nil {
		return NewError("marshal JSON").Wrap(err)
	}

	return nil
}

// EncodeYAML writes tree to w as YAML.
func EncodeYAML(w io.Writer, tree map[string]any) error {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return NewError("marshal YAML").Wrap(err)
	}

	_, err = w.Write(data)

	return err
}
