package syntax

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"dwislpy/common"
	"dwislpy/diag"
)

// NewScanner creates a scanner for the given source file.
func NewScanner(fpath string, ctx *diag.Context) (*Scanner, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("unable to open file. Does the file exist?")
	}

	return &Scanner{fh: f, file: bufio.NewReader(f), fpath: fpath, line: 1, ctx: ctx}, nil
}

// IsLetter tests if a rune may start or continue an identifier.
func IsLetter(r rune) bool {
	return r > '`' && r < '{' || r > '@' && r < '[' || r == '_'
}

// IsDigit tests if a rune is an ASCII digit.
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// Scanner turns a DwiSlpy source file into a stream of Tokens. It tracks
// significant indentation the way Python-family scanners do: the first
// indented line under a block fixes whether tabs or spaces (and how many)
// count as one indent level, and every subsequent line is measured against
// that unit.
type Scanner struct {
	ctx *diag.Context

	fh    *os.File
	file  *bufio.Reader
	fpath string

	line int
	col  int

	tokBuilder strings.Builder
	curr       rune

	indentLevel int

	// updateIndentLevel is set after a newline to prompt the scanner to
	// measure the next line's indentation and emit INDENT/DEDENT as needed.
	updateIndentLevel bool

	// indentMode: 0 = undetermined, -1 = tabs, n > 0 = spaces per level.
	indentMode int

	// lookahead/auxLookahead hold tokens produced as a side effect of
	// reading another token (e.g. a DEDENT discovered while measuring the
	// next line), to be returned on subsequent calls to ReadToken.
	lookahead    *Token
	auxLookahead *Token
}

// Close closes the underlying file handle.
func (s *Scanner) Close() error {
	return s.fh.Close()
}

// ReadToken reads and returns the next token in the stream. The boolean is
// false only once an unrecoverable scan error has already been reported.
func (s *Scanner) ReadToken() (*Token, bool) {
	if next := s.readLookahead(); next != nil {
		return next, true
	}

	for s.readNext() {
		tok := &Token{}
		malformed := false

		switch s.curr {
		case '\r':
			s.tokBuilder.Reset()
			continue
		case '\n':
			tok = s.getToken(NEWLINE)
			s.tokBuilder.Reset()
			if !s.processNewline() {
				return nil, false
			}
			return tok, true
		case ' ':
			if s.updateIndentLevel && s.indentMode > -1 {
				return s.measureIndent(' ')
			}
			s.tokBuilder.Reset()
			continue
		case '\t':
			if s.updateIndentLevel && s.indentMode < 1 {
				return s.measureIndent('\t')
			}
			s.tokBuilder.Reset()
			continue
		case '"':
			s.tokBuilder.Reset()
			tok, malformed = s.readStringLiteral()
		case '#':
			s.tokBuilder.Reset()
			if !s.skipLineComment() {
				return nil, false
			}
			return &Token{Kind: NEWLINE, Value: "\n", Line: s.line, Col: s.col}, true
		default:
			if IsLetter(s.curr) {
				tok = s.readWord()
			} else if IsDigit(s.curr) {
				tok = s.readIntLiteral()
			} else if kind, ok := symbolPatterns[string(s.curr)]; ok || s.curr == '/' {
				for ahead, more := s.peek(); more; ahead, more = s.peek() {
					if skind, ok := symbolPatterns[s.tokBuilder.String()+string(ahead)]; ok {
						kind = skind
						s.readNext()
					} else {
						break
					}
				}
				if _, ok := symbolPatterns[s.tokBuilder.String()]; ok {
					tok = s.getToken(kind)
				} else {
					malformed = true
				}
			} else {
				malformed = true
			}
		}

		s.tokBuilder.Reset()

		if malformed {
			s.ctx.Error(common.Locn{Source: s.fpath, Line: s.line, Col: s.col}, fmt.Sprintf("unrecognized character: %q", s.curr))
			return nil, false
		}

		s.updateIndentLevel = false
		return tok, true
	}

	// At EOF: unwind any open indentation with a trailing NEWLINE/DEDENT/EOF.
	s.auxLookahead = &Token{Kind: EOF, Line: s.line, Col: s.col}
	if s.indentLevel > 0 {
		s.lookahead = &Token{Kind: DEDENT, Value: fmt.Sprint(s.indentLevel), Line: s.line, Col: s.col}
		s.indentLevel = 0
	} else if s.curr == '\n' {
		// The last line already ended with its own NEWLINE token.
		eof := s.auxLookahead
		s.auxLookahead = nil
		return eof, true
	} else {
		s.lookahead = s.auxLookahead
		s.auxLookahead = nil
	}
	return s.makeToken(NEWLINE, ""), true
}

// measureIndent consumes a run of the given indent character, determines the
// indentation mode on first use, and emits INDENT/DEDENT tokens as the level
// changes. unit is ' ' or '\t'.
func (s *Scanner) measureIndent(unit rune) (*Token, bool) {
	s.updateIndentLevel = false

	for ahead, more := s.peek(); more && ahead == unit; ahead, more = s.peek() {
		s.readNext()
	}

	width := s.tokBuilder.Len()
	s.tokBuilder.Reset()

	if newline, ok := s.applyBlankLineRule(); ok {
		if newline != nil {
			return newline, true
		}
	} else {
		return nil, false
	}

	var level int
	if unit == '\t' {
		if s.indentMode == 0 {
			s.indentMode = -1
		}
		level = width
	} else {
		if s.indentMode == 0 {
			s.indentMode = width
			level = 1
		} else {
			level = width / s.indentMode
		}
	}

	diff := level - s.indentLevel
	s.indentLevel = level

	var tok *Token
	if diff < 0 {
		tok = s.makeToken(DEDENT, fmt.Sprint(-diff))
	} else if diff > 0 {
		tok = s.makeToken(INDENT, fmt.Sprint(diff))
	} else if next := s.readLookahead(); next != nil {
		return next, true
	} else {
		return s.ReadToken()
	}

	return tok, true
}

func (s *Scanner) makeToken(kind int, value string) *Token {
	return &Token{Kind: kind, Value: value, Line: s.line, Col: s.col}
}

func (s *Scanner) getToken(kind int) *Token {
	return s.makeToken(kind, s.tokBuilder.String())
}

func (s *Scanner) readNext() bool {
	r, _, err := s.file.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.ctx.Error(common.Locn{Source: s.fpath}, fmt.Sprintf("error reading file: %s", err))
		}
		return false
	}

	if s.curr == '\n' {
		s.line++
		s.col = 0
	}

	s.tokBuilder.WriteRune(r)
	s.curr = r
	s.col++
	return true
}

func (s *Scanner) skipNext() bool {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return false
	}
	if s.curr == '\n' {
		s.line++
		s.col = 0
	}
	s.curr = r
	s.col++
	return true
}

func (s *Scanner) peek() (rune, bool) {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return 0, false
	}
	s.file.UnreadRune()
	return r, true
}

// readWord reads an identifier or keyword, assuming s.curr is already the
// first character and in the token builder.
func (s *Scanner) readWord() *Token {
	for c, more := s.peek(); more; c, more = s.peek() {
		if !IsLetter(c) && !IsDigit(c) {
			break
		}
		s.readNext()
	}

	word := s.tokBuilder.String()
	if kind, ok := keywordPatterns[word]; ok {
		return s.makeToken(kind, word)
	}
	return s.makeToken(IDENTIFIER, word)
}

// readIntLiteral reads a run of decimal digits.
func (s *Scanner) readIntLiteral() *Token {
	for c, more := s.peek(); more && IsDigit(c); c, more = s.peek() {
		s.readNext()
	}
	return s.getToken(INTLIT)
}

// readStringLiteral reads a double-quoted string literal, leaving the raw
// (still-escaped) text in the token's value -- de-escaping happens when the
// parser builds the literal expression. Assumes the leading quote has just
// been read into s.curr.
func (s *Scanner) readStringLiteral() (*Token, bool) {
	s.tokBuilder.Reset()
	escape := false

	for s.skipNext() {
		if escape {
			s.tokBuilder.WriteRune('\\')
			s.tokBuilder.WriteRune(s.curr)
			escape = false
			continue
		}

		switch s.curr {
		case '\\':
			escape = true
		case '"':
			return s.getToken(STRINGLIT), false
		case '\n':
			return nil, true
		default:
			s.tokBuilder.WriteRune(s.curr)
		}
	}

	return nil, true
}

func (s *Scanner) skipLineComment() bool {
	for s.skipNext() && s.curr != '\n' {
	}
	return s.processNewline()
}

// processNewline arranges for indentation to be measured on the following
// line, emitting a DEDENT immediately if that line is not indented at all
// while the scanner is currently inside a block.
func (s *Scanner) processNewline() bool {
	s.updateIndentLevel = true

	if s.indentLevel > 0 {
		ahead, more := s.peek()
		isIndentChar := more && (ahead == ' ' || ahead == '\t')
		if !isIndentChar {
			next, ok := s.applyBlankLineRule()
			if !ok {
				return false
			}
			if next == nil {
				s.auxLookahead = s.lookahead
				s.lookahead = s.makeToken(DEDENT, fmt.Sprint(s.indentLevel))
				s.indentLevel = 0
			}
		}
	}

	s.tokBuilder.Reset()
	return true
}

// applyBlankLineRule peeks the next token; if it is itself a NEWLINE (a blank
// or comment-only line), that's returned directly so indentation is never
// measured against an empty line. Otherwise the token is stashed as the
// lookahead and nil is returned so the caller proceeds normally.
func (s *Scanner) applyBlankLineRule() (*Token, bool) {
	tok, ok := s.ReadToken()
	if !ok {
		return nil, false
	}
	if tok.Kind == NEWLINE {
		return tok, true
	}
	s.lookahead = tok
	return nil, true
}

func (s *Scanner) readLookahead() *Token {
	if s.lookahead != nil {
		tok := s.lookahead
		s.lookahead = s.auxLookahead
		s.auxLookahead = nil
		return tok
	}
	return nil
}
