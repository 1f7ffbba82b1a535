package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/zovlang/zov/pkg"
)

// baseConfig is the base name of the configuration file and category.
const baseConfig = "config"

// defaultDirMode is the permission mode for created runtime directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the identifier used to name the per-user config and
// cache directories. It derives from the executable's base name, with two
// substitutions: the dlv debugger's "__debug_bin*" output maps to the
// project name, and leading dots are stripped.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(
			filepath.Base(id), filepath.Ext(filepath.Base(id)),
		)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// userDir resolves a per-user base directory, falling back to a dotted
// subdirectory of the home directory, then the working directory, when the
// platform lookup fails.
func userDir(lookup func() (string, error), dotName string) string {
	if dir, err := lookup(); err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, dotName, basePrefix())
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// configPath joins the configuration directory with the given elements.
// With no elements it is equivalent to [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}

	return os.MkdirAll(cacheDir(), defaultDirMode)
}
