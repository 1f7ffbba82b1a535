//nolint:gochecknoglobals
package pkg

// Version is the semantic version of the zov module.
// It is printed by the CLI when users invoke the version flag.
const Version = "1.0.0"

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and log output.
	Name = "zov"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Configuration language evaluator"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"zovlang", "dev@zovlang.org"},
}
