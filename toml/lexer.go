package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Single-rune tokens
var punctuation = map[rune]TokenType{
	'=': TokenEqual,
	'.': TokenDot,
	',': TokenComma,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

// Lexer turns TOML source into tokens, tracking line and column
type Lexer struct {
	input []byte
	pos   int // current position in input (points to current char)
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// NextToken returns the next token in the stream
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return l.newToken(TokenEOF, "")
	}

	ch := l.peek()

	// Newlines terminate key/value statements
	if ch == '\n' {
		l.advance()
		return l.newToken(TokenNewline, "\n")
	}

	if ch == '#' {
		return l.readComment()
	}

	if typ, ok := punctuation[ch]; ok {
		l.advance()
		return l.newToken(typ, string(ch))
	}

	switch ch {
	case '"':
		return l.readBasicString()
	case '\'':
		return l.readLiteralString()
	}

	if isDigit(ch) || ch == '+' || ch == '-' || isAlpha(ch) || ch == '_' {
		return l.readBareOrNumber()
	}

	l.advance()
	return l.newToken(TokenError, fmt.Sprintf("unexpected character: %c", ch))
}

func (l *Lexer) newToken(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.line, Col: l.col - utf8.RuneCountInString(literal)}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch != ' ' && ch != '\t' && ch != '\r' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) readComment() Token {
	l.advance() // '#'
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.newToken(TokenComment, string(l.input[start:l.pos]))
}

func (l *Lexer) readBasicString() Token {
	l.advance() // opening quote
	start := l.pos
	escaped := false
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.newToken(TokenError, "unterminated string (newlines not allowed in basic strings)")
		}
		if ch == '"' && !escaped {
			lit := string(l.input[start:l.pos])
			l.advance() // closing quote
			s, err := unescape(lit)
			if err != nil {
				return l.newToken(TokenError, err.Error())
			}
			return l.newToken(TokenString, s)
		}
		escaped = ch == '\\' && !escaped
		l.advance()
	}
	return l.newToken(TokenError, "unterminated string")
}

// readLiteralString reads a single-quoted string, no escapes
func (l *Lexer) readLiteralString() Token {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.newToken(TokenError, "unterminated literal string")
		}
		if ch == '\'' {
			lit := string(l.input[start:l.pos])
			l.advance()
			return l.newToken(TokenString, lit)
		}
		l.advance()
	}
	return l.newToken(TokenError, "unterminated literal string")
}

// unescape resolves TOML basic string escapes
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape")
		}
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'u', 'U':
			n := 4
			if s[i] == 'U' {
				n = 8
			}
			if i+n >= len(s) {
				return "", fmt.Errorf("short unicode escape")
			}
			code, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape %q", s[i+1:i+1+n])
			}
			b.WriteRune(rune(code))
			i += n
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
	}
	return b.String(), nil
}

func (l *Lexer) readBareOrNumber() Token {
	start := l.pos
	firstCh := l.peek()
	// Numbers start with digit or sign; bare keys start with alpha/_
	isNumber := isDigit(firstCh) || firstCh == '+' || firstCh == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' {
			l.advance()
		} else if ch == '.' && isNumber {
			// '.' only continues a numeric literal (floats); keys split on it
			l.advance()
		} else {
			break
		}
	}
	lit := string(l.input[start:l.pos])

	if lit == "true" || lit == "false" {
		return l.newToken(TokenBool, lit)
	}

	// Prefixed integers: 0x, 0o, 0b (with optional leading sign)
	checkLit := lit
	if len(checkLit) > 0 && (checkLit[0] == '+' || checkLit[0] == '-') {
		checkLit = checkLit[1:]
	}
	if len(checkLit) > 2 && checkLit[0] == '0' {
		switch checkLit[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return l.newToken(TokenInteger, lit)
		}
	}

	// Letters other than an exponent mark make it a bare key
	hasLetter := false
	for _, r := range lit {
		if isAlpha(r) && r != 'e' && r != 'E' {
			hasLetter = true
			break
		}
	}
	if hasLetter || !isNumber && !isDigit(firstCh) {
		return l.newToken(TokenIdent, lit)
	}

	if strings.ContainsAny(lit, ".eE") {
		return l.newToken(TokenFloat, lit)
	}
	return l.newToken(TokenInteger, lit)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
