package evaluator

import (
	"fmt"
	"strings"

	am "github.com/npillmayer/areamethod"
)

// Flavor selects the geometry the engine works in.
type Flavor int8

// Flavors of geometry.
const (
	FlavorPlane  Flavor = iota // metric plane
	FlavorAffine               // affine plane, no metric invariants
)

func (f Flavor) String() string {
	if f == FlavorAffine {
		return "affine"
	}
	return "plane"
}

// ParseFlavor reads a flavor from its name.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(s) {
	case "plane", "":
		return FlavorPlane, nil
	case "affine":
		return FlavorAffine, nil
	}
	return FlavorPlane, am.Malformed("unknown geometry flavor %q", s)
}

// Backend selects how eliminants are substituted.
type Backend int8

// Backends for substitution.
const (
	BackendSubstitution Backend = iota // rational function substitution
	BackendPrem                        // pseudo-remainder over an explicit ring
)

func (b Backend) String() string {
	if b == BackendPrem {
		return "prem"
	}
	return "substitution"
}

// ParseBackend reads a backend from its name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "substitution", "subs", "":
		return BackendSubstitution, nil
	case "prem", "sparse":
		return BackendPrem, nil
	}
	return BackendSubstitution, am.Malformed("unknown backend %q", s)
}

// DefaultMaxRounds bounds the number of rewriting rounds per construction.
const DefaultMaxRounds = 32

// Option configures a call of the engine.
type Option func(*options)

type options struct {
	basis      []am.Point
	prove      *bool
	extensions []am.Expr
	debug      bool
	memo       *Memo
	backend    Backend
	maxRounds  int
}

func defaultOptions() options {
	return options{maxRounds: DefaultMaxRounds}
}

func (o options) String() string {
	prove := "auto"
	if o.prove != nil {
		prove = fmt.Sprintf("%v", *o.prove)
	}
	return fmt.Sprintf("basis=%v prove=%s backend=%v", o.basis, prove, o.backend)
}

// WithBasis sets the basis points (O,U,V) of the coordinate closure. They
// have to be free points.
func WithBasis(o, u, v am.Point) Option {
	return func(opts *options) {
		opts.basis = []am.Point{o, u, v}
	}
}

// WithProve forces prove mode on or off. Without this option, predicates
// are proven and expressions are evaluated. Proving an expression proves
// that it vanishes.
func WithProve(prove bool) Option {
	return func(opts *options) {
		opts.prove = &prove
	}
}

// WithEvaluate is WithProve(false): predicates are lowered to an expression
// which is evaluated.
func WithEvaluate() Option {
	return WithProve(false)
}

// WithExtensions adds algebraic relations for parameters. Each relation is a
// polynomial in a single parameter, e.g. r² - 3.
func WithExtensions(minpolys ...am.Expr) Option {
	return func(opts *options) {
		opts.extensions = append(opts.extensions, minpolys...)
	}
}

// WithDebug switches the evaluator's tracer to debug level for the duration
// of the call. The tracer is global: concurrent calls share the debug level,
// and it is restored when the last call with WithDebug returns. Calls without
// the option running at the same time will trace at debug level as well.
func WithDebug(debug bool) Option {
	return func(opts *options) {
		opts.debug = debug
	}
}

// WithMemo sets the memo table for sub-proofs. The memo may be re-used
// between calls of the same flavor.
func WithMemo(memo *Memo) Option {
	return func(opts *options) {
		opts.memo = memo
	}
}

// WithBackend selects the substitution backend.
func WithBackend(b Backend) Option {
	return func(opts *options) {
		opts.backend = b
	}
}

// WithMaxRounds bounds the number of rewriting rounds per construction.
func WithMaxRounds(n int) Option {
	return func(opts *options) {
		if n > 0 {
			opts.maxRounds = n
		}
	}
}
