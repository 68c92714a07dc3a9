/*
Package grammar reads the textual problem language of the area method.

A problem is a sequence of statements, one per line (or separated by
semicolons). Comments start with '%' and extend to the end of the line.

	point A B C                  % free points
	param r                      % parameters
	D = midpoint B C
	E = lratio A C r
	F = inter line D E line A B
	basis A B C
	ext r^2 - 3
	prove collinear D E F
	eval S(F,A,B) / S(A,B,C)

Constructions are written as "Y = kind arguments", where kind is one of
midpoint, lratio, mratio, pratio, tratio, foot, aratio, centroid, orthocenter,
circumcenter, incenter, inversion, on and inter. The latter two take objects:
line U V, pline W U V, tline W U V, bline U V, aline P Q W U V and circle O A.

Expressions use + - * / and ^ with integer exponents, parentheses, rational
literals (1/2, 0.25), parameter names and the invariants S(A,B,C),
S(A,B,C,D), P(A,B,C), P(A,B,C,D) and R(A,B,C,D). Arguments of constructions
are separated by blanks, so an argument expression starting with a minus sign
has to be parenthesized. Rational literals are single tokens, therefore 2/3^2
denotes (2/3)^2.

Scanning is done with lexmachine; expressions are parsed by an operator
precedence parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.grammar")
}
