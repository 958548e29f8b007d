package sqlgate

import (
	"fmt"
	"strconv"
	"strings"
)

// Blocklist is the fixed set of mutating and DDL keywords, in scan order.
var Blocklist = []string{"UPDATE", "DELETE", "INSERT", "DROP", "ALTER", "CREATE", "TRUNCATE"}

// Normalize trims surrounding whitespace and at most one trailing statement
// terminator. A second terminator is left in place for the gates to see.
func Normalize(sql string) string {
	normalized := strings.TrimSpace(sql)
	if trimmed, ok := strings.CutSuffix(normalized, ";"); ok {
		normalized = strings.TrimSpace(trimmed)
	}
	return normalized
}

// CheckStatementType rejects anything whose first token is not SELECT.
func CheckStatementType(tokens []Token) *Verdict {
	if len(tokens) == 0 || !tokens[0].Is("SELECT") {
		return reject(TagRejectNonSelect, "rejected: only SELECT statements are allowed")
	}
	return nil
}

// CheckTargetScope requires the token after every FROM or JOIN, and after
// every comma of a FROM list, to name the allowed relation. Statements
// without FROM/JOIN have nothing to check.
func CheckTargetScope(tokens []Token, relation string) *Verdict {
	for i, tok := range tokens {
		if !tok.Is("FROM") && !tok.Is("JOIN") {
			continue
		}
		if i+1 >= len(tokens) || !referencesRelation(tokens, i+1, relation) {
			return wrongTable(relation)
		}
		if tok.Is("FROM") && !fromListInScope(tokens, i+2, relation) {
			return wrongTable(relation)
		}
	}
	return nil
}

func wrongTable(relation string) *Verdict {
	return reject(TagRejectWrongTable, fmt.Sprintf("rejected: only the %s relation may be queried", relation))
}

// fromClauseEnd lists the words that close a FROM clause at its own
// parenthesis depth.
var fromClauseEnd = map[string]bool{
	"WHERE": true, "GROUP": true, "HAVING": true, "WINDOW": true, "ORDER": true,
	"LIMIT": true, "OFFSET": true, "FETCH": true, "FOR": true,
	"UNION": true, "INTERSECT": true, "EXCEPT": true,
}

// fromListInScope walks the rest of a FROM clause starting at tokens[i] and
// checks that every top-level comma is followed by the relation.
func fromListInScope(tokens []Token, i int, relation string) bool {
	depth := 0
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Kind == TokenPunct && tok.Value == "(":
			depth++
		case tok.Kind == TokenPunct && tok.Value == ")":
			if depth == 0 {
				return true
			}
			depth--
		case depth > 0:
			// inside a subexpression
		case tok.Kind == TokenPunct && tok.Value == ";":
			return true
		case tok.Kind == TokenWord && fromClauseEnd[strings.ToUpper(tok.Value)]:
			return true
		case tok.Kind == TokenPunct && tok.Value == ",":
			if i+1 >= len(tokens) || !referencesRelation(tokens, i+1, relation) {
				return false
			}
		}
	}
	return true
}

// referencesRelation reports whether tokens[i] is the relation itself and
// not the schema part of a qualified name.
func referencesRelation(tokens []Token, i int, relation string) bool {
	tok := tokens[i]
	if !tok.IsIdent() || !strings.EqualFold(tok.Value, relation) {
		return false
	}
	if i+1 < len(tokens) && tokens[i+1].Kind == TokenPunct && tokens[i+1].Value == "." {
		return false
	}
	return true
}

// CheckKeywords scans every bare word for a blocklisted keyword. Keywords are
// checked in Blocklist order, so the reported keyword is the first blocklist
// entry present in the statement. Literals and quoted identifiers never match.
func CheckKeywords(tokens []Token) *Verdict {
	present := make(map[string]bool)
	for _, tok := range tokens {
		if tok.Kind == TokenWord {
			present[strings.ToUpper(tok.Value)] = true
		}
	}

	for _, kw := range Blocklist {
		if present[kw] {
			v := reject(TagRejectKeyword, fmt.Sprintf("rejected: forbidden keyword %s detected", kw))
			v.Keyword = kw
			return v
		}
	}
	return nil
}

// CheckStatementShape rejects input that is not a single complete
// statement: a statement separator left after normalization, or a string,
// quoted identifier or block comment still open at end of input.
func CheckStatementShape(tokens []Token) *Verdict {
	for _, tok := range tokens {
		switch {
		case tok.Kind == TokenInvalid:
			return reject(TagRejectNonSelect, "rejected: statement ends inside an unterminated literal or comment")
		case tok.Kind == TokenPunct && tok.Value == ";":
			return reject(TagRejectNonSelect, "rejected: only a single SELECT statement is allowed")
		}
	}
	return nil
}

// EnforceLimit appends a LIMIT clause when the statement has none. Trailing
// comments are dropped before appending so the clause cannot be commented out.
func EnforceLimit(normalized string, tokens []Token, limit int) string {
	for _, tok := range tokens {
		if tok.Is("LIMIT") {
			return normalized
		}
	}

	body := normalized
	if len(tokens) > 0 {
		body = strings.TrimSpace(normalized[:tokens[len(tokens)-1].End])
	}
	return body + " LIMIT " + strconv.Itoa(limit)
}
