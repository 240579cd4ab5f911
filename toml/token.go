package toml

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenComment

	TokenIdent   // bare key
	TokenString  // "basic" or 'literal'
	TokenInteger // 123, 0x7f, 1_000
	TokenFloat   // 123.45, 1e3
	TokenBool    // true/false

	TokenEqual
	TokenDot
	TokenComma
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenNewline
)

var tokenNames = [...]string{
	TokenError:    "error",
	TokenEOF:      "end of input",
	TokenComment:  "comment",
	TokenIdent:    "bare key",
	TokenString:   "string",
	TokenInteger:  "integer",
	TokenFloat:    "float",
	TokenBool:     "boolean",
	TokenEqual:    "'='",
	TokenDot:      "'.'",
	TokenComma:    "','",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenNewline:  "newline",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// Token is one lexeme with its 1-based line and 0-based column
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// isKey reports whether the token can name a key. Bare digits and
// true/false are valid keys.
func (t Token) isKey() bool {
	switch t.Type {
	case TokenIdent, TokenString, TokenInteger, TokenBool:
		return true
	}
	return false
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF, TokenNewline:
		return t.Type.String()
	case TokenError:
		return fmt.Sprintf("error(%s)", t.Literal)
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s %q...", t.Type, t.Literal[:20])
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}
