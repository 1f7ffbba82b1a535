package profile

// Config is a frozen set of profiler parameters. Calling it yields the
// configured mode, output path, and quiet flag; the zero configuration is
// obtained from a function returning three zero values.
type Config func() (mode, path string, quiet bool)

// Start launches the profiler described by c and returns a handle for
// stopping it.
//
// When the binary was built without the pprof tag, or no mode is set, the
// returned handle is a no-op. Start and Stop are always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option selecting the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(p *params) { p.mode = mode })
	}
}

// WithPath returns a functional option selecting the output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(p *params) { p.path = path })
	}
}

// WithQuiet returns a functional option suppressing profiler log output.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(p *params) { p.quiet = quiet })
	}
}

type params struct {
	mode  string
	path  string
	quiet bool
}

func (c Config) set(mod func(*params)) Config {
	var p params

	if c != nil {
		p.mode, p.path, p.quiet = c()
	}

	mod(&p)

	return func() (string, string, bool) {
		return p.mode, p.path, p.quiet
	}
}

type ignore struct{}

func (ignore) Stop() {}
