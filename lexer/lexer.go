package lexer

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Structural
	TokenLParen TokenType = iota // (
	TokenRParen                  // )
	TokenComma                   // ,
	TokenDot                     // .

	// Comparison operators
	TokenEq    // =
	TokenNeq   // !=
	TokenLt    // <
	TokenGt    // >
	TokenLte   // <=
	TokenGte   // >=
	TokenMinus // -

	// Literals
	TokenInt    // integer literal
	TokenString // "string literal" or 'string literal'

	// Identifiers (keywords are identifiers; the parser tells them apart)
	TokenIdent

	// Any other printable character. Only meaningful inside condition text.
	TokenSymbol

	// End
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenLParen: "(", TokenRParen: ")", TokenComma: ",", TokenDot: ".",
	TokenEq: "=", TokenNeq: "!=", TokenLt: "<", TokenGt: ">", TokenLte: "<=", TokenGte: ">=",
	TokenMinus: "-", TokenInt: "INT", TokenString: "STRING", TokenIdent: "IDENT",
	TokenSymbol: "SYMBOL", TokenEOF: "EOF",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Token represents a single lexical token.
type Token struct {
	Type TokenType
	Val  string
	Pos  int // rune offset in original input
	End  int // rune offset just past the token
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Val, t.Pos)
}

// Lex tokenizes the input string into a slice of Tokens.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)
	i := 0

	emit := func(tt TokenType, val string, pos int) {
		tokens = append(tokens, Token{Type: tt, Val: val, Pos: pos, End: pos + len([]rune(val))})
	}

	for i < len(runes) {
		ch := runes[i]

		// Skip whitespace
		if unicode.IsSpace(ch) {
			i++
			continue
		}

		pos := i
		switch ch {
		case '(':
			emit(TokenLParen, "(", pos)
			i++
			continue
		case ')':
			emit(TokenRParen, ")", pos)
			i++
			continue
		case ',':
			emit(TokenComma, ",", pos)
			i++
			continue
		case '.':
			emit(TokenDot, ".", pos)
			i++
			continue
		case '=':
			emit(TokenEq, "=", pos)
			i++
			continue
		case '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				emit(TokenNeq, "!=", pos)
				i += 2
			} else {
				emit(TokenSymbol, "!", pos)
				i++
			}
			continue
		case '<':
			if i+1 < len(runes) && runes[i+1] == '=' {
				emit(TokenLte, "<=", pos)
				i += 2
			} else {
				emit(TokenLt, "<", pos)
				i++
			}
			continue
		case '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				emit(TokenGte, ">=", pos)
				i += 2
			} else {
				emit(TokenGt, ">", pos)
				i++
			}
			continue
		case '-':
			// Negative number right after an operator, otherwise a plain minus
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) && isNegativeContext(tokens) {
				tok, newI := lexNumber(runes, i)
				tokens = append(tokens, tok)
				i = newI
				continue
			}
			emit(TokenMinus, "-", pos)
			i++
			continue
		}

		// String literal. A quote inside a word (O'Brien) or one that is
		// never closed is an ordinary symbol.
		if ch == '"' || ch == '\'' {
			if i == 0 || !isIdentPart(runes[i-1]) {
				if tok, newI, ok := lexString(runes, i); ok {
					tokens = append(tokens, tok)
					i = newI
					continue
				}
			}
			emit(TokenSymbol, string(ch), pos)
			i++
			continue
		}

		// Number
		if unicode.IsDigit(ch) {
			tok, newI := lexNumber(runes, i)
			tokens = append(tokens, tok)
			i = newI
			continue
		}

		// Identifier or keyword
		if isIdentStart(ch) {
			tok, newI := lexIdent(runes, i)
			tokens = append(tokens, tok)
			i = newI
			continue
		}

		if unicode.IsPrint(ch) {
			emit(TokenSymbol, string(ch), pos)
			i++
			continue
		}

		return nil, fmt.Errorf("unexpected character %q at position %d", ch, pos)
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(runes), End: len(runes)})
	return tokens, nil
}

func isNegativeContext(tokens []Token) bool {
	if len(tokens) == 0 {
		return true
	}
	switch tokens[len(tokens)-1].Type {
	case TokenLParen, TokenComma, TokenEq, TokenNeq, TokenLt, TokenGt, TokenLte, TokenGte:
		return true
	}
	return false
}

// lexString reads a quoted literal. The token value keeps the quotes so the
// raw source can be recovered; Unquoted strips them.
func lexString(runes []rune, start int) (Token, int, bool) {
	quote := runes[start]
	for i := start + 1; i < len(runes); i++ {
		if runes[i] == quote {
			return Token{Type: TokenString, Val: string(runes[start : i+1]), Pos: start, End: i + 1}, i + 1, true
		}
	}
	return Token{}, 0, false
}

func lexNumber(runes []rune, start int) (Token, int) {
	i := start
	if i < len(runes) && runes[i] == '-' {
		i++
	}
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	// Digits running into letters (e.g. "2nd") form a single identifier
	if i < len(runes) && isIdentStart(runes[i]) && runes[start] != '-' {
		return lexIdent(runes, start)
	}
	return Token{Type: TokenInt, Val: string(runes[start:i]), Pos: start, End: i}, i
}

func lexIdent(runes []rune, start int) (Token, int) {
	i := start
	for i < len(runes) && isIdentPart(runes[i]) {
		i++
	}
	return Token{Type: TokenIdent, Val: string(runes[start:i]), Pos: start, End: i}, i
}

// Unquoted returns the value of a string token without its quotes.
func (t Token) Unquoted() string {
	if t.Type != TokenString || len(t.Val) < 2 {
		return t.Val
	}
	r := []rune(t.Val)
	return string(r[1 : len(r)-1])
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
