package sqlgate

import (
	"strings"
	"unicode/utf8"
)

// TokenKind classifies a lexed SQL token.
type TokenKind int

const (
	TokenWord        TokenKind = iota // bare identifier or keyword
	TokenQuotedIdent                  // "ident"
	TokenString                       // 'literal', E'literal', $$literal$$, $tag$literal$tag$
	TokenNumber                       // 42, 3.14
	TokenPunct                        // any other single character: ; , . ( ) * = ` ...
	TokenInvalid                      // unterminated string, identifier or block comment
)

func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenQuotedIdent:
		return "quoted_ident"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenPunct:
		return "punct"
	case TokenInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of a statement. Value holds the unescaped
// content for quoted identifiers and strings, the raw text otherwise.
type Token struct {
	Kind  TokenKind
	Value string
	Start int // byte offset of the first character
	End   int // byte offset just past the last character
}

// Is reports whether the token is the bare word kw, ignoring case.
func (t Token) Is(kw string) bool {
	return t.Kind == TokenWord && strings.EqualFold(t.Value, kw)
}

// IsIdent reports whether the token names an identifier (bare or quoted).
func (t Token) IsIdent() bool {
	return t.Kind == TokenWord || t.Kind == TokenQuotedIdent
}

type lexer struct {
	input string
	pos   int
}

// Tokenize splits a statement into tokens following PostgreSQL's lexical
// rules. Whitespace, line comments (--) and nested block comments (/* */) are
// skipped. An unterminated string, quoted identifier or block comment becomes
// a final TokenInvalid spanning the rest of the input.
func Tokenize(sql string) []Token {
	l := &lexer{input: sql}

	var tokens []Token
	for {
		if !l.skipWhitespaceAndComments() {
			return append(tokens, l.invalidFrom(l.pos))
		}
		if l.pos >= len(l.input) {
			return tokens
		}
		tokens = append(tokens, l.next())
	}
}

func (l *lexer) invalidFrom(start int) Token {
	l.pos = len(l.input)
	return Token{Kind: TokenInvalid, Value: l.input[start:], Start: start, End: l.pos}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// skipWhitespaceAndComments advances past blanks and comments. It returns
// false when a block comment is still open at end of input.
func (l *lexer) skipWhitespaceAndComments() bool {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isSpace(ch):
			l.pos++
		case ch == '-' && l.peek(1) == '-':
			end := strings.IndexAny(l.input[l.pos:], "\n\r")
			if end == -1 {
				l.pos = len(l.input)
				return true
			}
			l.pos += end + 1
		case ch == '/' && l.peek(1) == '*':
			if !l.skipBlockComment() {
				return false
			}
		default:
			return true
		}
	}
	return true
}

// skipBlockComment consumes a block comment. Block comments nest.
func (l *lexer) skipBlockComment() bool {
	start := l.pos
	depth := 0
	for l.pos < len(l.input) {
		switch {
		case l.input[l.pos] == '/' && l.peek(1) == '*':
			depth++
			l.pos += 2
		case l.input[l.pos] == '*' && l.peek(1) == '/':
			depth--
			l.pos += 2
			if depth == 0 {
				return true
			}
		default:
			l.pos++
		}
	}
	l.pos = start
	return false
}

func (l *lexer) next() Token {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	switch {
	case r == '\'':
		value, ok := l.readQuoted('\'')
		return l.closed(TokenString, value, start, ok)
	case r == '"':
		value, ok := l.readQuoted('"')
		return l.closed(TokenQuotedIdent, value, start, ok)
	case (r == 'E' || r == 'e') && l.peek(1) == '\'':
		l.pos++ // prefix
		value, ok := l.readEscaped()
		return l.closed(TokenString, value, start, ok)
	case r == '$' && l.dollarTag() != "":
		value, ok := l.readDollarQuoted(l.dollarTag())
		return l.closed(TokenString, value, start, ok)
	case isWordStart(r):
		l.readWord()
		return Token{Kind: TokenWord, Value: l.input[start:l.pos], Start: start, End: l.pos}
	case isDigit(r) || (r == '.' && isDigit(rune(l.peek(1)))):
		l.readNumber()
		return Token{Kind: TokenNumber, Value: l.input[start:l.pos], Start: start, End: l.pos}
	default:
		l.pos += size
		return Token{Kind: TokenPunct, Value: l.input[start:l.pos], Start: start, End: l.pos}
	}
}

func (l *lexer) closed(kind TokenKind, value string, start int, ok bool) Token {
	if !ok {
		return l.invalidFrom(start)
	}
	return Token{Kind: kind, Value: value, Start: start, End: l.pos}
}

// readQuoted consumes a quoted run whose delimiter is escaped by doubling.
// It reports false when input ends before the closing quote.
func (l *lexer) readQuoted(quote byte) (string, bool) {
	l.pos++ // opening quote

	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			if l.peek(1) == quote {
				b.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++ // closing quote
			return b.String(), true
		}
		b.WriteByte(ch)
		l.pos++
	}
	return b.String(), false
}

// readEscaped consumes an E'...' body, where a backslash escapes the next
// character in addition to the doubled quote.
func (l *lexer) readEscaped() (string, bool) {
	l.pos++ // opening quote

	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\' && l.pos+1 < len(l.input):
			b.WriteByte(unescape(l.input[l.pos+1]))
			l.pos += 2
		case ch == '\'' && l.peek(1) == '\'':
			b.WriteByte('\'')
			l.pos += 2
		case ch == '\'':
			l.pos++
			return b.String(), true
		default:
			b.WriteByte(ch)
			l.pos++
		}
	}
	return b.String(), false
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	default:
		return ch
	}
}

// dollarTag returns the $tag$ delimiter starting at the current position, or
// "" when the $ does not open a dollar-quoted string (e.g. a $1 parameter).
func (l *lexer) dollarTag() string {
	i := l.pos + 1
	for i < len(l.input) && l.input[i] != '$' {
		ch := l.input[i]
		if !isDollarTagByte(ch) || (i == l.pos+1 && ch >= '0' && ch <= '9') {
			return ""
		}
		i++
	}
	if i >= len(l.input) {
		return ""
	}
	return l.input[l.pos : i+1]
}

func (l *lexer) readDollarQuoted(tag string) (string, bool) {
	l.pos += len(tag)
	end := strings.Index(l.input[l.pos:], tag)
	if end == -1 {
		return "", false
	}
	value := l.input[l.pos : l.pos+end]
	l.pos += end + len(tag)
	return value, true
}

func (l *lexer) readWord() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isWordPart(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) readNumber() {
	seenDot := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch >= '0' && ch <= '9':
		case ch == '.' && !seenDot:
			seenDot = true
		case (ch == 'e' || ch == 'E') && isDigit(rune(l.peek(1))):
			l.pos++
		default:
			return
		}
		l.pos++
	}
}

// Identifier characters follow PostgreSQL: ASCII letters, underscore and any
// non-ASCII character start a word; digits and $ may continue it.
func isWordStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= utf8.RuneSelf
}

func isWordPart(r rune) bool {
	return isWordStart(r) || isDigit(r) || r == '$'
}

func isDollarTagByte(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch >= utf8.RuneSelf
}

// isSpace is PostgreSQL's whitespace set.
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
