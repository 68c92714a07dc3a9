package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	am "github.com/npillmayer/areamethod"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token categories. Literal one-char tokens use their character as token
// value, keywords start at Keyword.
const (
	EOF     int = 0
	Ident   int = 1
	Number  int = 2
	Newline int = 3
	Keyword int = 1000
)

// The tokens representing literal one-char lexemes
var literals = []string{
	";", "(", ")", ",", "=", "+", "-", "*", "/", "^",
}

// Statement keywords
var statements = []string{
	"point", "points", "param", "params", "basis", "ext", "prove", "eval", "and", "or",
}

// Construction keywords
var constructions = []string{
	"midpoint", "lratio", "mratio", "pratio", "tratio", "foot", "aratio",
	"centroid", "orthocenter", "circumcenter", "incenter", "inversion",
	"on", "inter",
}

// Objects and predicates
var objects = []string{"line", "pline", "tline", "bline", "aline", "circle"}
var predicates = []string{
	"collinear", "parallel", "perpendicular", "eqpoints", "eqdistance", "vanishes",
}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their int ids

var keywords []string

var initOnce sync.Once // monitors one-time initialization

var problemLexer *lexmachine.Lexer
var lexerErr error

func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["IDENT"] = Ident
		tokenIds["NUMBER"] = Number
		tokenIds["NL"] = Newline
		for _, lit := range literals {
			tokenIds[lit] = int(lit[0])
		}
		keywords = append(keywords, statements...)
		keywords = append(keywords, constructions...)
		keywords = append(keywords, objects...)
		keywords = append(keywords, predicates...)
		for i, k := range keywords {
			tokenIds[k] = Keyword + i
		}
		problemLexer, lexerErr = newLexer()
	})
}

// Token returns a token name and its value.
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

// TokenName returns a readable name for a token value.
func TokenName(id int) string {
	initTokens()
	switch {
	case id == EOF:
		return "end of input"
	case id == Ident:
		return "identifier"
	case id == Number:
		return "number"
	case id == Newline:
		return "end of line"
	case id >= Keyword && id < Keyword+len(keywords):
		return keywords[id-Keyword]
	}
	return fmt.Sprintf("'%c'", rune(id))
}

// Lexer returns the lexmachine lexer for the problem language.
func Lexer() (*lexmachine.Lexer, error) {
	initTokens()
	return problemLexer, lexerErr
}

func newLexer() (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`%[^\n]*`), skip) // skip comments
	lexer.Add([]byte(`[0-9]+((\.[0-9]+)|(\/[0-9]+))?`), makeToken("NUMBER"))
	for _, k := range keywords {
		lexer.Add([]byte(k), makeToken(k))
	}
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|')*`), makeToken("IDENT"))
	for _, lit := range literals {
		pattern := lit
		if strings.ContainsAny(lit, "()+-*/^") {
			pattern = "\\" + lit
		}
		lexer.Add([]byte(pattern), makeToken(lit))
	}
	lexer.Add([]byte(`\n`), makeToken("NL"))
	lexer.Add([]byte(`( |\t|\r)+`), skip) // skip whitespace
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile lexer: %v", err)
		return nil, err
	}
	return lexer, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return func(scan *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return scan.Token(id, string(m.Bytes), m), nil
	}
}

// numberValue converts a numeric lexeme, either decimal or a fraction, to
// an exact constant.
func numberValue(lexeme string) (am.Expr, error) {
	r, ok := new(big.Rat).SetString(lexeme)
	if !ok {
		return am.Zero(), am.Malformed("malformed number %q", lexeme)
	}
	return am.Rational(r), nil
}
