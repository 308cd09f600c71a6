// Package lexer implements the indentation-sensitive tokenizer for the
// Mython source language: a byte stream goes in, a stream of tokens with
// synthesized Indent/Dedent/Newline markers comes out.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mython/token"
)

// LexerError reports a malformed source that the lexer cannot recover from.
// It is always fatal to the containing parse.
type LexerError struct {
	Line    int
	Message string
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("lexer error at line %d: %s", e.Line, e.Message)
}

const punctuationChars = ".,()*/+-:;"

// Lexer turns a byte stream into a token stream, synthesizing Indent,
// Dedent and Newline tokens from leading whitespace. One indentation
// level is two leading spaces. Tabs never count as indentation: they are
// accepted only inside string literals and comments, and anywhere else
// (including at the start of a line) they are a LexerError.
type Lexer struct {
	src *bufio.Reader
	line int

	depth          int
	pendingDedents int

	history []token.Token
	eof     bool
}

// New constructs a Lexer over src and eagerly consumes the first token,
// so CurrentToken is always defined.
func New(src io.Reader) *Lexer {
	l := &Lexer{src: bufio.NewReader(src), line: 1}
	l.history = append(l.history, l.produce())
	return l
}

// CurrentToken returns the last token emitted.
func (l *Lexer) CurrentToken() token.Token {
	return l.history[len(l.history)-1]
}

// NextToken advances the lexer by one token and returns it; the returned
// token becomes the new current token.
func (l *Lexer) NextToken() token.Token {
	tok := l.produce()
	l.history = append(l.history, tok)
	return tok
}

// History returns every token produced so far, including the current one.
// The slice is owned by the Lexer and must not be mutated.
func (l *Lexer) History() []token.Token {
	return l.history
}

// Expect panics with a LexerError unless the current token has kind.
// It returns the current token on success.
func (l *Lexer) Expect(kind token.Kind) token.Token {
	cur := l.CurrentToken()
	if cur.Kind != kind {
		l.fail("Expect(): wrong current token kind, want %v got %v", kind, cur.Kind)
	}
	return cur
}

// ExpectNext advances and then applies Expect.
func (l *Lexer) ExpectNext(kind token.Kind) token.Token {
	l.NextToken()
	return l.Expect(kind)
}

// ExpectId requires the current token to be an Id with the given spelling,
// failing loudly on either a kind mismatch or a value mismatch.
func (l *Lexer) ExpectId(name string) token.Token {
	t := l.Expect(token.ID)
	if t.Str != name {
		l.fail("Expect(): wrong Id payload, want %q got %q", name, t.Str)
	}
	return t
}

// ExpectNextId advances and then applies ExpectId.
func (l *Lexer) ExpectNextId(name string) token.Token {
	l.NextToken()
	return l.ExpectId(name)
}

// ExpectChar requires the current token to be a Char with the given byte.
func (l *Lexer) ExpectChar(c byte) token.Token {
	t := l.Expect(token.CHAR)
	if t.Ch != c {
		l.fail("Expect(): wrong Char payload, want %q got %q", c, t.Ch)
	}
	return t
}

// ExpectNextChar advances and then applies ExpectChar.
func (l *Lexer) ExpectNextChar(c byte) token.Token {
	l.NextToken()
	return l.ExpectChar(c)
}

func (l *Lexer) fail(format string, args ...any) {
	panic(&LexerError{Line: l.line, Message: fmt.Sprintf(format, args...)})
}

// produce computes the next token, driving the indentation state machine.
func (l *Lexer) produce() token.Token {
	if len(l.history) > 0 && l.CurrentToken().Kind == token.EOF {
		return token.Simple(token.EOF, l.line)
	}

	if l.pendingDedents > 0 {
		l.pendingDedents--
		l.depth--
		return token.Simple(token.DEDENT, l.line)
	}

	atLineStart := len(l.history) == 0 || l.CurrentToken().Kind == token.NEWLINE
	if atLineStart {
		spaces, atEOF := l.skipBlankAndCommentLines()
		if atEOF {
			return l.finishAtEOF()
		}

		target := spaces / 2
		switch {
		case target > l.depth:
			l.depth++
			return token.Simple(token.INDENT, l.line)
		case target < l.depth:
			l.pendingDedents = l.depth - target - 1
			l.depth--
			return token.Simple(token.DEDENT, l.line)
		}
		// target == depth: fall through and tokenize the line's content.
	}

	return l.scanLineToken()
}

// finishAtEOF implements the end-of-stream sequence: a closing Newline (if
// the last real token needs one), one Dedent per remaining nesting level,
// then Eof forever after.
func (l *Lexer) finishAtEOF() token.Token {
	hasHistory := len(l.history) > 0
	if hasHistory {
		switch l.CurrentToken().Kind {
		case token.NEWLINE, token.DEDENT, token.EOF:
			// no closing newline needed
		default:
			return token.Simple(token.NEWLINE, l.line)
		}
	}

	if l.depth > 0 {
		l.pendingDedents = l.depth - 1
		l.depth--
		return token.Simple(token.DEDENT, l.line)
	}

	return token.Simple(token.EOF, l.line)
}

// skipBlankAndCommentLines consumes lines that are empty or comment-only,
// stopping right after the leading spaces of the first line that has real
// content. It reports that count and whether the stream ran out first.
func (l *Lexer) skipBlankAndCommentLines() (spaces int, atEOF bool) {
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			return 0, true
		}

		switch {
		case b == ' ':
			spaces++
		case b == '\n':
			l.line++
			spaces = 0
		case b == '#':
			l.consumeToEndOfLine()
			spaces = 0
		default:
			_ = l.src.UnreadByte()
			return spaces, false
		}
	}
}

func (l *Lexer) consumeToEndOfLine() {
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' {
			_ = l.src.UnreadByte()
			return
		}
	}
}

// scanLineToken tokenizes the next lexeme of the current physical line.
func (l *Lexer) scanLineToken() token.Token {
	b, err := l.src.ReadByte()
	if err != nil {
		// Content ran out mid-line without a trailing newline; treat it
		// the same as reaching end of stream at a line boundary.
		return l.finishAtEOF()
	}

	switch {
	case b == '\n':
		tok := token.Simple(token.NEWLINE, l.line)
		l.line++
		return tok
	case b == '#':
		l.consumeToEndOfLine()
		return token.Simple(token.NEWLINE, l.line)
	case isDigit(b):
		return l.scanNumber(b)
	case isIdentStart(b):
		return l.scanIdentifier(b)
	case b == '\'' || b == '"':
		return l.scanString(b)
	case b == '=' || b == '!' || b == '<' || b == '>':
		return l.scanRelational(b)
	case strings.IndexByte(punctuationChars, b) >= 0:
		tok := token.CharTok(b, l.line)
		l.skipTrailingSpaces()
		return tok
	case b == ' ':
		l.fail("ParseNextToken(): unexpected space")
		panic("unreachable")
	default:
		l.fail("ParseNextToken(): unrecognized byte %q", b)
		panic("unreachable")
	}
}

func (l *Lexer) scanNumber(first byte) token.Token {
	digits := []byte{first}
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			break
		}
		if isDigit(b) {
			digits = append(digits, b)
			continue
		}
		if b == ' ' || b == '#' || b == '\n' || strings.IndexByte(punctuationChars, b) >= 0 {
			_ = l.src.UnreadByte()
			break
		}
		l.fail("GetNumberLexeme(): malformed number, unexpected %q", b)
	}

	value := 0
	for _, d := range digits {
		value = value*10 + int(d-'0')
	}

	tok := token.Number(value, l.line)
	l.skipTrailingSpaces()
	return tok
}

func (l *Lexer) scanIdentifier(first byte) token.Token {
	name := []byte{first}
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			break
		}
		if isIdentContinue(b) {
			name = append(name, b)
			continue
		}
		_ = l.src.UnreadByte()
		break
	}

	spelling := string(name)
	var tok token.Token
	if kind, isKeyword := token.Keywords[spelling]; isKeyword {
		tok = token.Simple(kind, l.line)
	} else {
		tok = token.Id(spelling, l.line)
	}

	l.skipTrailingSpaces()
	return tok
}

func (l *Lexer) scanString(quote byte) token.Token {
	var sb strings.Builder
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			l.fail("GetStringLexeme(): unterminated string literal")
		}

		switch {
		case b == quote:
			tok := token.Str(sb.String(), l.line)
			l.skipTrailingSpaces()
			return tok
		case b == '\n':
			l.fail("GetStringLexeme(): newline inside string literal")
		case b == '\\':
			esc, err := l.src.ReadByte()
			if err != nil {
				l.fail("GetStringLexeme(): unterminated escape sequence")
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func (l *Lexer) scanRelational(first byte) token.Token {
	var kind token.Kind
	switch first {
	case '=':
		kind = token.EQ
	case '!':
		kind = token.NOT_EQ
	case '<':
		kind = token.LESS_OR_EQ
	case '>':
		kind = token.GREATER_OR_EQ
	}

	b, err := l.src.ReadByte()
	if err == nil && b == '=' {
		tok := token.Simple(kind, l.line)
		l.skipTrailingSpaces()
		return tok
	}
	if err == nil {
		_ = l.src.UnreadByte()
	}

	tok := token.CharTok(first, l.line)
	l.skipTrailingSpaces()
	return tok
}

func (l *Lexer) skipTrailingSpaces() {
	for {
		b, err := l.src.ReadByte()
		if err != nil {
			return
		}
		if b != ' ' {
			_ = l.src.UnreadByte()
			return
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
