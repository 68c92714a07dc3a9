package grammar

import (
	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/timtadh/lexmachine"
)

// Parse reads a problem text and returns its statements in order of
// appearance. Parse does not check the statements against each other; see
// package problem for that.
func Parse(input string) ([]Statement, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	var stmts []Statement
	for {
		tok, err := p.ts.lookahead()
		if err != nil {
			return stmts, err
		}
		switch tok.Type {
		case EOF:
			tracer().Debugf("parsed %d statements", len(stmts))
			return stmts, nil
		case Newline, ';':
			p.ts.advance()
			continue
		}
		s, err := p.statement()
		if err != nil {
			return stmts, err
		}
		if err = p.endOfStatement(); err != nil {
			return stmts, err
		}
		stmts = append(stmts, s)
	}
}

// ParseExpr reads a single expression.
func ParseExpr(input string) (am.Expr, error) {
	p, err := newParser(input)
	if err != nil {
		return am.Zero(), err
	}
	e, err := p.expression()
	if err != nil {
		return e, err
	}
	return e, p.end()
}

// ParsePredicate reads a single predicate, as written after 'prove'.
func ParsePredicate(input string) (am.Predicate, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	pred, err := p.predicate()
	if err != nil {
		return nil, err
	}
	return pred, p.end()
}

type parser struct {
	ts *tokenStream
}

func newParser(input string) (*parser, error) {
	ts, err := newTokenStream(input)
	if err != nil {
		return nil, err
	}
	return &parser{ts: ts}, nil
}

// keyword returns the keyword of a token, or the empty string.
func keyword(tok *lexmachine.Token) string {
	if tok.Type >= Keyword && tok.Type < Keyword+len(keywords) {
		return keywords[tok.Type-Keyword]
	}
	return ""
}

func (p *parser) endOfStatement() error {
	tok, err := p.ts.lookahead()
	if err != nil {
		return err
	}
	switch tok.Type {
	case EOF, Newline, ';':
		return nil
	}
	return p.ts.unexpected(tok, "end of statement")
}

// end checks that all of the input has been consumed, allowing for trailing
// newlines.
func (p *parser) end() error {
	for p.ts.peek() == Newline {
		p.ts.advance()
	}
	tok, err := p.ts.lookahead()
	if err != nil {
		return err
	}
	if tok.Type != EOF {
		return p.ts.unexpected(tok, "end of input")
	}
	return nil
}

func (p *parser) statement() (Statement, error) {
	tok, err := p.ts.lookahead()
	if err != nil {
		return nil, err
	}
	if tok.Type == Ident {
		return p.construction()
	}
	switch keyword(tok) {
	case "point", "points":
		p.ts.advance()
		pts, err := p.pointList()
		return PointDecl{Points: pts}, err
	case "param", "params":
		p.ts.advance()
		pts, err := p.pointList()
		params := make([]am.Param, len(pts))
		for i, pt := range pts {
			params[i] = am.Param(pt)
		}
		return ParamDecl{Params: params}, err
	case "basis":
		p.ts.advance()
		pts, err := p.points(3)
		if err != nil {
			return nil, err
		}
		return Basis{O: pts[0], U: pts[1], V: pts[2]}, nil
	case "ext":
		p.ts.advance()
		e, err := p.expression()
		return Extension{MinPoly: e}, err
	case "prove":
		p.ts.advance()
		pred, err := p.predicate()
		return Prove{Pred: pred}, err
	case "eval":
		p.ts.advance()
		e, err := p.expression()
		return Eval{Expr: e}, err
	}
	return nil, p.ts.unexpected(tok, "statement")
}

// --- Points ----------------------------------------------------------------

func (p *parser) point() (am.Point, error) {
	tok, err := p.ts.match(Ident)
	if err != nil {
		return "", err
	}
	pt := am.Point(tok.Lexeme)
	return pt, pt.Validate()
}

// points reads exactly n points.
func (p *parser) points(n int) ([]am.Point, error) {
	pts := make([]am.Point, n)
	for i := range pts {
		pt, err := p.point()
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

// pointList reads one or more names.
func (p *parser) pointList() ([]am.Point, error) {
	pt, err := p.point()
	if err != nil {
		return nil, err
	}
	pts := []am.Point{pt}
	for p.ts.peek() == Ident {
		if pt, err = p.point(); err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// --- Constructions -----------------------------------------------------------

// construction reads 'Y = kind arguments'.
func (p *parser) construction() (Statement, error) {
	y, err := p.point()
	if err != nil {
		return nil, err
	}
	if _, err = p.ts.match('='); err != nil {
		return nil, err
	}
	tok, err := p.ts.advance()
	if err != nil {
		return nil, err
	}
	kind := keyword(tok)
	var c construct.Construction
	switch kind {
	case "midpoint", "centroid", "orthocenter", "circumcenter", "foot", "incenter", "inversion":
		c, err = p.pointsOnly(y, kind)
	case "lratio", "mratio", "tratio":
		var pts []am.Point
		var r am.Expr
		if pts, err = p.points(2); err != nil {
			return nil, err
		}
		if r, err = p.expression(); err != nil {
			return nil, err
		}
		switch kind {
		case "lratio":
			c = construct.LRatio{Y: y, P: pts[0], Q: pts[1], R: r}
		case "mratio":
			c = construct.MRatio{Y: y, P: pts[0], Q: pts[1], R: r}
		default:
			c = construct.TRatio{Y: y, P: pts[0], Q: pts[1], R: r}
		}
	case "pratio":
		var pts []am.Point
		var r am.Expr
		if pts, err = p.points(3); err != nil {
			return nil, err
		}
		if r, err = p.expression(); err != nil {
			return nil, err
		}
		c = construct.PRatio{Y: y, W: pts[0], U: pts[1], V: pts[2], R: r}
	case "aratio":
		c, err = p.aratio(y)
	case "on":
		var obj construct.Object
		if obj, err = p.object(); err == nil {
			c = construct.On{Y: y, Obj: obj}
		}
	case "inter":
		var obj1, obj2 construct.Object
		if obj1, err = p.object(); err != nil {
			return nil, err
		}
		if obj2, err = p.object(); err == nil {
			c = construct.Inter{Y: y, Obj1: obj1, Obj2: obj2}
		}
	default:
		return nil, p.ts.unexpected(tok, "construction")
	}
	if err != nil {
		return nil, err
	}
	tracer().Debugf("construction %v", c)
	return Construct{C: c}, nil
}

// pointsOnly reads constructions whose arguments are points only.
func (p *parser) pointsOnly(y am.Point, kind string) (construct.Construction, error) {
	n := 3
	if kind == "midpoint" {
		n = 2
	}
	pts, err := p.points(n)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "midpoint":
		return construct.Midpoint{Y: y, P: pts[0], Q: pts[1]}, nil
	case "centroid":
		return construct.Centroid{Y: y, A: pts[0], B: pts[1], C: pts[2]}, nil
	case "orthocenter":
		return construct.Orthocenter{Y: y, A: pts[0], B: pts[1], C: pts[2]}, nil
	case "circumcenter":
		return construct.Circumcenter{Y: y, A: pts[0], B: pts[1], C: pts[2]}, nil
	case "foot":
		return construct.Foot{Y: y, P: pts[0], U: pts[1], V: pts[2]}, nil
	case "incenter":
		return construct.Incenter{C: y, I: pts[0], A: pts[1], B: pts[2]}, nil
	}
	return construct.Inversion{Y: y, Q: pts[0], O: pts[1], A: pts[2]}, nil
}

func (p *parser) aratio(y am.Point) (construct.Construction, error) {
	pts, err := p.points(3)
	if err != nil {
		return nil, err
	}
	var r [3]am.Expr
	for i := range r {
		if r[i], err = p.expression(); err != nil {
			return nil, err
		}
	}
	return construct.ARatio{Y: y, O: pts[0], U: pts[1], V: pts[2],
		RO: r[0], RU: r[1], RV: r[2]}, nil
}

func (p *parser) object() (construct.Object, error) {
	tok, err := p.ts.advance()
	if err != nil {
		return nil, err
	}
	var pts []am.Point
	switch keyword(tok) {
	case "line":
		if pts, err = p.points(2); err == nil {
			return construct.Line{U: pts[0], V: pts[1]}, nil
		}
	case "pline":
		if pts, err = p.points(3); err == nil {
			return construct.PLine{W: pts[0], U: pts[1], V: pts[2]}, nil
		}
	case "tline":
		if pts, err = p.points(3); err == nil {
			return construct.TLine{W: pts[0], U: pts[1], V: pts[2]}, nil
		}
	case "bline":
		if pts, err = p.points(2); err == nil {
			return construct.BLine{U: pts[0], V: pts[1]}, nil
		}
	case "aline":
		if pts, err = p.points(5); err == nil {
			return construct.ALine{P: pts[0], Q: pts[1], W: pts[2], U: pts[3], V: pts[4]}, nil
		}
	case "circle":
		if pts, err = p.points(2); err == nil {
			return construct.Circle{O: pts[0], A: pts[1]}, nil
		}
	default:
		return nil, p.ts.unexpected(tok, "line or circle")
	}
	return nil, err
}

// --- Predicates --------------------------------------------------------------

// predicate reads a chain of atomic predicates joined either by 'and' or
// by 'or'.
func (p *parser) predicate() (am.Predicate, error) {
	first, err := p.atomicPredicate()
	if err != nil {
		return nil, err
	}
	preds := []am.Predicate{first}
	junctor := ""
	for {
		tok, err := p.ts.lookahead()
		if err != nil {
			return nil, err
		}
		kw := keyword(tok)
		if kw != "and" && kw != "or" {
			break
		}
		if junctor != "" && junctor != kw {
			return nil, am.Malformed("line %d, column %d: cannot mix 'and' with 'or'",
				tok.StartLine, tok.StartColumn)
		}
		junctor = kw
		p.ts.advance()
		next, err := p.atomicPredicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, next)
	}
	switch junctor {
	case "and":
		return am.All(preds), nil
	case "or":
		return am.Any(preds), nil
	}
	return first, nil
}

func (p *parser) atomicPredicate() (am.Predicate, error) {
	tok, err := p.ts.advance()
	if err != nil {
		return nil, err
	}
	var pts []am.Point
	switch keyword(tok) {
	case "collinear":
		if pts, err = p.points(3); err == nil {
			return am.Collinear{A: pts[0], B: pts[1], C: pts[2]}, nil
		}
	case "parallel":
		if pts, err = p.points(4); err == nil {
			return am.Parallel{A: pts[0], B: pts[1], C: pts[2], D: pts[3]}, nil
		}
	case "perpendicular":
		if pts, err = p.points(4); err == nil {
			return am.Perpendicular{A: pts[0], B: pts[1], C: pts[2], D: pts[3]}, nil
		}
	case "eqpoints":
		if pts, err = p.points(2); err == nil {
			return am.EqPoints{A: pts[0], B: pts[1]}, nil
		}
	case "eqdistance":
		if pts, err = p.points(4); err == nil {
			return am.EqDistance{A: pts[0], B: pts[1], C: pts[2], D: pts[3]}, nil
		}
	case "vanishes":
		var e am.Expr
		if e, err = p.expression(); err == nil {
			return am.Vanishes{E: e}, nil
		}
	default:
		return nil, p.ts.unexpected(tok, "predicate")
	}
	return nil, err
}
