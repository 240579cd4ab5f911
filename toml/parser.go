package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses TOML tokens into a map[string]any
type Parser struct {
	lexer    *Lexer
	cur      Token
	peek     Token
	root     map[string]any
	current  map[string]any  // table receiving key/value pairs
	declared map[string]bool // explicitly declared [table] headers
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:    NewLexer(input),
		root:     make(map[string]any),
		declared: make(map[string]bool),
	}
	// Prime cur and peek
	p.advance()
	p.advance()
	p.current = p.root
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()

	for p.peek.Type == TokenComment {
		p.peek = p.lexer.NextToken()
	}
}

// Parse consumes the whole input and returns the root table
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		if p.cur.Type == TokenNewline {
			p.advance()
			continue
		}

		if err := p.parseStatement(); err != nil {
			return nil, err
		}

		// One statement per line
		if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
			return nil, fmt.Errorf("line %d: expected end of line after statement, got %s", p.cur.Line, p.cur.String())
		}
	}
	return p.root, nil
}

func (p *Parser) parseStatement() error {
	switch {
	case p.cur.Type == TokenLBracket:
		return p.parseTableHeader()
	case p.cur.isKey():
		return p.parseKeyValuePair(p.current)
	case p.cur.Type == TokenError:
		return fmt.Errorf("lexing error line %d: %s", p.cur.Line, p.cur.Literal)
	default:
		return fmt.Errorf("unexpected token line %d: %s", p.cur.Line, p.cur.String())
	}
}

// parseTableHeader handles [a] and [a.b]
func (p *Parser) parseTableHeader() error {
	line := p.cur.Line
	if p.peek.Type == TokenLBracket {
		return fmt.Errorf("line %d: arrays of tables are not supported", line)
	}
	p.advance() // [

	keys, err := p.parseKeyParts()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenRBracket {
		return fmt.Errorf("line %d: expected closing bracket for table", line)
	}
	p.advance() // ]

	path := strings.Join(keys, ".")
	if p.declared[path] {
		return fmt.Errorf("line %d: table [%s] defined twice", line, path)
	}
	p.declared[path] = true

	table, err := walkTables(p.root, keys)
	if err != nil {
		return fmt.Errorf("line %d: %w", line, err)
	}
	p.current = table
	return nil
}

// walkTables descends from root along keys, creating missing tables
func walkTables(root map[string]any, keys []string) (map[string]any, error) {
	cur := root
	for _, key := range keys {
		val, exists := cur[key]
		if !exists {
			next := make(map[string]any)
			cur[key] = next
			cur = next
			continue
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %s is not a table", key)
		}
		cur = next
	}
	return cur, nil
}

func (p *Parser) parseKeyValuePair(scope map[string]any) error {
	keys, err := p.parseKeyParts()
	if err != nil {
		return err
	}

	if p.cur.Type != TokenEqual {
		return fmt.Errorf("expected '=' after key at line %d, got %s", p.cur.Line, p.cur.String())
	}
	p.advance() // =

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	return p.assignValue(scope, keys, val)
}

func (p *Parser) assignValue(scope map[string]any, keys []string, val any) error {
	parent, err := walkTables(scope, keys[:len(keys)-1])
	if err != nil {
		return fmt.Errorf("line %d: %w", p.cur.Line, err)
	}
	last := keys[len(keys)-1]
	if _, exists := parent[last]; exists {
		return fmt.Errorf("duplicate key %s at line %d", last, p.cur.Line)
	}
	parent[last] = val
	return nil
}

func (p *Parser) parseKeyParts() ([]string, error) {
	var keys []string

	for {
		if !p.cur.isKey() {
			return nil, fmt.Errorf("expected key at line %d, got %s", p.cur.Line, p.cur.String())
		}
		keys = append(keys, p.cur.Literal)
		p.advance()

		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.advance() // .
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.advance()
		return tok.Literal, nil
	case TokenInteger:
		val, err := parseInteger(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q: %w", tok.Line, tok.Literal, err)
		}
		p.advance()
		return val, nil
	case TokenFloat:
		val, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q: %w", tok.Line, tok.Literal, err)
		}
		p.advance()
		return val, nil
	case TokenBool:
		p.advance()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	case TokenError:
		return nil, fmt.Errorf("lexing error line %d: %s", tok.Line, tok.Literal)
	}
	return nil, fmt.Errorf("unexpected value token %s at line %d", tok.String(), tok.Line)
}

// parseInteger accepts decimal with '_' separators and 0x/0o/0b prefixes
func parseInteger(lit string) (int, error) {
	s := strings.ReplaceAll(lit, "_", "")
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}

	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return int(v), nil
}

func (p *Parser) parseArray() ([]any, error) {
	p.advance() // [
	arr := make([]any, 0)

	for p.cur.Type != TokenRBracket {
		if p.cur.Type == TokenNewline {
			p.advance()
			continue
		}
		if p.cur.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated array at line %d", p.cur.Line)
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.cur.Type == TokenNewline {
			p.advance()
		}
		if p.cur.Type == TokenComma {
			p.advance()
		} else if p.cur.Type != TokenRBracket {
			return nil, fmt.Errorf("expected comma or closing bracket in array at line %d", p.cur.Line)
		}
	}
	p.advance() // ]
	return arr, nil
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.advance() // {
	m := make(map[string]any)

	for p.cur.Type != TokenRBrace {
		keys, err := p.parseKeyParts()
		if err != nil {
			return nil, err
		}

		if p.cur.Type != TokenEqual {
			return nil, fmt.Errorf("expected '=' in inline table at line %d", p.cur.Line)
		}
		p.advance()

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		if err := p.assignValue(m, keys, val); err != nil {
			return nil, err
		}

		if p.cur.Type == TokenComma {
			p.advance()
		} else if p.cur.Type != TokenRBrace {
			return nil, fmt.Errorf("expected comma or closing brace in inline table at line %d", p.cur.Line)
		}
	}
	p.advance() // }
	return m, nil
}
