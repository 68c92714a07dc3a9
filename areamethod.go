/*
Package areamethod is an automated prover for Euclidean plane geometry,
following the area method of Chou, Gao and Zhang.

A problem is stated as a sequence of point constructions and an objective.
Objectives are either algebraic expressions over geometric invariants, or
geometric predicates. The engine (package evaluator) eliminates constructed
points from the objective, one construction after the other, until only free
points remain, and then reduces the result to a coordinate basis of three
free points.

This root package holds the vocabulary shared by all sub-packages: points,
parameters, the three geometric invariants (signed area, Pythagoras
difference, signed ratio) in canonical form, expressions over them,
predicates, and the error taxonomy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package areamethod

import (
	"context"
	"io"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod")
}

// Configuration holds global configuration values of the command line tool.
// We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}
