package grammar

import (
	"errors"

	am "github.com/npillmayer/areamethod"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tokenStream wraps a lexmachine scanner with one token of lookahead.
type tokenStream struct {
	scanner *lexmachine.Scanner
	la      *lexmachine.Token
	err     error // sticky scanner error
	line    int // position of the last token matched
	column  int
}

func newTokenStream(input string) (*tokenStream, error) {
	lexer, err := Lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &tokenStream{scanner: scanner}, nil
}

// lookahead returns the next token without consuming it. At the end of input
// a token of type EOF is returned.
func (ts *tokenStream) lookahead() (*lexmachine.Token, error) {
	if ts.la != nil {
		return ts.la, nil
	}
	if ts.err != nil {
		return nil, ts.err
	}
	tok, err, eos := ts.scanner.Next()
	if eos || (err == nil && tok == nil) { // input may end with skipped text
		ts.la = &lexmachine.Token{Type: EOF, StartLine: ts.line, StartColumn: ts.column}
		return ts.la, nil
	}
	if err != nil {
		var ui *machines.UnconsumedInput
		if errors.As(err, &ui) {
			ts.err = am.Malformed("line %d, column %d: unexpected input %q",
				ui.StartLine, ui.StartColumn, excerpt(ui.Text, ui.StartTC, ui.FailTC))
		} else {
			ts.err = am.Malformed("%v", err)
		}
		return nil, ts.err
	}
	ts.la = tok.(*lexmachine.Token)
	tracer().Debugf("token %s = %q", TokenName(ts.la.Type), ts.la.Lexeme)
	return ts.la, nil
}

// peek returns the type of the next token, or -1 on a scanner error.
func (ts *tokenStream) peek() int {
	tok, err := ts.lookahead()
	if err != nil {
		return -1
	}
	return tok.Type
}

// match consumes the next token, which must be of type typ.
func (ts *tokenStream) match(typ int) (*lexmachine.Token, error) {
	tok, err := ts.lookahead()
	if err != nil {
		return nil, err
	}
	if tok.Type != typ {
		return nil, ts.unexpected(tok, TokenName(typ))
	}
	ts.la = nil
	ts.line, ts.column = tok.StartLine, tok.StartColumn
	return tok, nil
}

// advance consumes the lookahead token, whatever it is.
func (ts *tokenStream) advance() (*lexmachine.Token, error) {
	tok, err := ts.lookahead()
	if err != nil {
		return nil, err
	}
	return ts.match(tok.Type)
}

func (ts *tokenStream) unexpected(tok *lexmachine.Token, expected string) error {
	found := TokenName(tok.Type)
	if tok.Type == Ident || tok.Type == Number {
		found = string(tok.Lexeme)
	}
	return am.Malformed("line %d, column %d: expected %s, found %s",
		tok.StartLine, tok.StartColumn, expected, found)
}

func excerpt(text []byte, from, to int) string {
	if to >= len(text) {
		to = len(text) - 1
	}
	if from > to || from < 0 {
		return ""
	}
	return string(text[from : to+1])
}
