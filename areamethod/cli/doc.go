/*
Package cli implements the areamethod command line interface.

Commands prove, eval and check work on problem files; without a command an
interactive REPL is started, reading statements of the problem language.
Flags may be set in a NestedText configuration file in the application's
configuration directory, with flags given on the command line taking
precedence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'areamethod.cli'
func tracer() tracing.Trace {
	return tracing.Select("areamethod.cli")
}
