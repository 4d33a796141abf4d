package shell

// ResolveEnvironment exposes resolveEnvironment for testing.
var ResolveEnvironment = resolveEnvironment

// LookPath exposes lookPath for testing.
var LookPath = lookPath

// SetEnviron replaces the base environment of r.
func (r *Runner) SetEnviron(environ func() []string) {
	r.environ = environ
}
