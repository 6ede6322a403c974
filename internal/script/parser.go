package script

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vtstage/internal/key"
)

// ErrorKind distinguishes the parse failure modes named in spec.md §4.3.
type ErrorKind int

const (
	UnknownCommand ErrorKind = iota
	ExpectedString
	ExpectedDuration
	UnclosedStringLiteral
	UnexpectedEscape
	UnknownSuffix
	UnclosedKeyLiteral
	UnexpectedCharacter
)

// ParseError is returned by Parse on any grammar or semantic violation.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string { return e.Msg }

func newErr(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses a single line of script source. A blank or comment-only
// line returns (nil, nil).
func Parse(line string) (Command, error) {
	p := &parser{text: []byte(line)}
	return p.parse()
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokArg
	tokInt
	tokDuration
	tokKey
	tokEOF
)

type token struct {
	kind tokenKind
	str  string
	ival uint64
	dur  time.Duration
	k    key.Key
}

type parser struct {
	text []byte
	pos  int
}

func (p *parser) parse() (Command, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIdent:
		return p.parseCommand(tok.str)
	case tokEOF:
		return nil, nil
	default:
		return nil, newErr(UnexpectedCharacter, "expected command identifier")
	}
}

func (p *parser) parseCommand(ident string) (Command, error) {
	switch ident {
	case "start":
		var args []string
		for {
			tok, err := p.nextToken()
			if err != nil {
				return nil, err
			}
			switch tok.kind {
			case tokString:
				args = append(args, tok.str)
			case tokEOF:
				if len(args) == 0 {
					return nil, newErr(ExpectedString, "the 'start' command expects at least one argument")
				}
				return Start{Args: args}, nil
			default:
				return nil, newErr(ExpectedString, "the 'start' command accepts strings only")
			}
		}

	case "send_keys":
		var keys []key.Key
		for {
			tok, err := p.nextToken()
			if err != nil {
				return nil, err
			}
			switch tok.kind {
			case tokString:
				for _, ch := range tok.str {
					keys = append(keys, key.FromChar(ch))
				}
			case tokKey:
				keys = append(keys, tok.k)
			case tokEOF:
				return SendKeys{Keys: keys}, nil
			default:
				return nil, newErr(ExpectedString, "the 'send_keys' command accepts strings and keys only")
			}
		}

	case "kill":
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return Kill{}, nil

	case "wait":
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return Wait{}, nil

	case "wait_text":
		var text *string
		timeout := time.Second
		for {
			tok, err := p.nextToken()
			if err != nil {
				return nil, err
			}
			switch tok.kind {
			case tokString:
				if text != nil {
					return nil, newErr(ExpectedString, "the 'wait_text' command expects only one string")
				}
				s := tok.str
				text = &s
			case tokArg:
				if tok.str != "timeout" {
					return nil, newErr(UnexpectedCharacter, "unexpected argument %q", tok.str)
				}
				valTok, err := p.nextToken()
				if err != nil {
					return nil, err
				}
				if valTok.kind != tokDuration {
					return nil, newErr(ExpectedDuration, "the 'timeout' arg expects a duration")
				}
				timeout = valTok.dur
			case tokEOF:
				if text == nil {
					return nil, newErr(ExpectedString, "the 'wait_text' command expects a string")
				}
				return WaitText{Text: *text, Timeout: timeout}, nil
			default:
				return nil, newErr(ExpectedString, "the 'wait_text' command expects a string")
			}
		}

	case "sleep":
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokDuration {
			return nil, newErr(ExpectedDuration, "expected duration")
		}
		return Sleep{Duration: tok.dur}, nil

	case "print":
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokString {
			return nil, newErr(ExpectedString, "expected string")
		}
		return Print{Message: tok.str}, nil

	case "dump_png":
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokString {
			return nil, newErr(ExpectedString, "expected string")
		}
		return DumpPng{Path: tok.str}, nil

	case "dump_txt":
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokString {
			return nil, newErr(ExpectedString, "expected string")
		}
		return DumpTxt{Path: tok.str}, nil

	default:
		return nil, newErr(UnknownCommand, "unknown command: %s", ident)
	}
}

func (p *parser) nextToken() (token, error) {
	p.skipSpaces()

	ch := p.peek()
	switch {
	case ch == 0:
		return token{kind: tokEOF}, nil
	case ch == '#':
		return token{kind: tokEOF}, nil
	case ch == '"':
		s, err := p.takeString()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, str: s}, nil
	case isAlpha(ch):
		s := p.takeIdent()
		if p.peek() == ':' {
			p.pos++
			return token{kind: tokArg, str: s}, nil
		}
		return token{kind: tokIdent, str: s}, nil
	case ch == '<':
		k, err := p.takeKey()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokKey, k: k}, nil
	case isDigit(ch):
		num := p.takeNumber()
		if isAlpha(p.peek()) {
			suffix := p.takeIdent()
			switch suffix {
			case "ms":
				return token{kind: tokDuration, dur: time.Duration(num) * time.Millisecond}, nil
			case "s":
				return token{kind: tokDuration, dur: time.Duration(num) * time.Second}, nil
			default:
				return token{}, newErr(UnknownSuffix, "unknown number suffix: %s", suffix)
			}
		}
		return token{kind: tokInt, ival: num}, nil
	default:
		return token{}, newErr(UnexpectedCharacter, "unexpected char: %c", ch)
	}
}

func (p *parser) expectEOF() error {
	tok, err := p.nextToken()
	if err != nil {
		return err
	}
	if tok.kind != tokEOF {
		return newErr(UnexpectedCharacter, "unexpected trailing token")
	}
	return nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.text) {
		return 0
	}
	return p.text[p.pos]
}

func (p *parser) take() byte {
	if p.pos >= len(p.text) {
		return 0
	}
	b := p.text[p.pos]
	p.pos++
	return b
}

func (p *parser) skipSpaces() {
	for {
		ch := p.peek()
		if ch == 0 || !isSpace(ch) {
			return
		}
		p.pos++
	}
}

func (p *parser) takeString() (string, error) {
	var b strings.Builder
	if p.take() != '"' {
		return "", newErr(UnexpectedCharacter, "expected string")
	}
	for {
		ch := p.take()
		switch ch {
		case '"':
			return b.String(), nil
		case 0:
			return "", newErr(UnclosedStringLiteral, "unclosed string literal")
		case '\\':
			esc := p.take()
			switch esc {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", newErr(UnexpectedEscape, "unexpected escape character: \\%c", esc)
			}
		default:
			b.WriteByte(ch)
		}
	}
}

func (p *parser) takeKey() (key.Key, error) {
	var b strings.Builder
	b.WriteByte(p.take()) // '<'
	for {
		ch := p.take()
		if ch == 0 {
			return key.Key{}, newErr(UnclosedKeyLiteral, "unclosed key literal")
		}
		b.WriteByte(ch)
		if ch == '>' {
			break
		}
	}
	k, err := key.Parse(b.String())
	if err != nil {
		return key.Key{}, newErr(UnclosedKeyLiteral, "%v", err)
	}
	return k, nil
}

func (p *parser) takeIdent() string {
	start := p.pos
	for {
		ch := p.peek()
		if isAlnum(ch) || ch == '_' {
			p.pos++
		} else {
			break
		}
	}
	return string(p.text[start:p.pos])
}

func (p *parser) takeNumber() uint64 {
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	n, _ := strconv.ParseUint(string(p.text[start:p.pos]), 10, 64)
	return n
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
