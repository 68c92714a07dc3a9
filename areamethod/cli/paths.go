package cli

import "path/filepath"

// AppPaths is an interface to determine application specific paths for
// configuration, logging/tracing and problem files.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
	ProblemDir() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	return appHome(appTag)
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}

// ProblemDir is where problem files are searched if a name given on the
// command line does not denote a file.
func (a appPaths) ProblemDir() string {
	return filepath.Join(a.ConfigDir(), "problems")
}
