package sqlgate

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	type tok struct {
		kind  TokenKind
		value string
	}

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "simple select",
			input: "SELECT name FROM vgs_view",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenWord, "name"}, {TokenWord, "FROM"}, {TokenWord, "vgs_view"},
			},
		},
		{
			name:  "string literal with doubled quote",
			input: "WHERE name = 'Assassin''s Creed'",
			want: []tok{
				{TokenWord, "WHERE"}, {TokenWord, "name"}, {TokenPunct, "="}, {TokenString, "Assassin's Creed"},
			},
		},
		{
			name:  "quoted identifier with doubled quote",
			input: `"Global ""Sales""" x`,
			want: []tok{
				{TokenQuotedIdent, `Global "Sales"`}, {TokenWord, "x"},
			},
		},
		{
			name:  "backtick is punctuation",
			input: "`year`",
			want: []tok{
				{TokenPunct, "`"}, {TokenWord, "year"}, {TokenPunct, "`"},
			},
		},
		{
			name:  "dollar quoted string hides a quote",
			input: "SELECT $$ ' $$ FROM x",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenString, " ' "}, {TokenWord, "FROM"}, {TokenWord, "x"},
			},
		},
		{
			name:  "tagged dollar quote",
			input: "$fn$ a $$ b $fn$",
			want: []tok{
				{TokenString, " a $$ b "},
			},
		},
		{
			name:  "positional parameter is not a dollar quote",
			input: "$1 + $2",
			want: []tok{
				{TokenPunct, "$"}, {TokenNumber, "1"}, {TokenPunct, "+"}, {TokenPunct, "$"}, {TokenNumber, "2"},
			},
		},
		{
			name:  "dollar inside identifier",
			input: "a$$ b",
			want: []tok{
				{TokenWord, "a$$"}, {TokenWord, "b"},
			},
		},
		{
			name:  "escape string with backslash quote",
			input: `E'it\'s' FROM x`,
			want: []tok{
				{TokenString, "it's"}, {TokenWord, "FROM"}, {TokenWord, "x"},
			},
		},
		{
			name:  "lowercase escape string with escapes",
			input: `e'a\nb\\' c`,
			want: []tok{
				{TokenString, "a\nb\\"}, {TokenWord, "c"},
			},
		},
		{
			name:  "E prefix only at word start",
			input: "name'x'",
			want: []tok{
				{TokenWord, "name"}, {TokenString, "x"},
			},
		},
		{
			name:  "nested block comment",
			input: "SELECT /* a /* b */ ' */ 1",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenNumber, "1"},
			},
		},
		{
			name:  "line comment ends at carriage return",
			input: "SELECT -- note\r1",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenNumber, "1"},
			},
		},
		{
			name:  "numbers and punctuation",
			input: "global_sales > 1.5e3, .5;",
			want: []tok{
				{TokenWord, "global_sales"}, {TokenPunct, ">"}, {TokenNumber, "1.5e3"},
				{TokenPunct, ","}, {TokenNumber, ".5"}, {TokenPunct, ";"},
			},
		},
		{
			name:  "comments are skipped",
			input: "-- leading\nSELECT /* inline */ 1 -- trailing",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenNumber, "1"},
			},
		},
		{
			name:  "unterminated block comment",
			input: "SELECT 1 /* DROP TABLE",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenNumber, "1"}, {TokenInvalid, "/* DROP TABLE"},
			},
		},
		{
			name:  "unterminated nested block comment",
			input: "SELECT 1 /* a /* b */",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenNumber, "1"}, {TokenInvalid, "/* a /* b */"},
			},
		},
		{
			name:  "unterminated string",
			input: "SELECT 'DROP",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenInvalid, "'DROP"},
			},
		},
		{
			name:  "unterminated escape string",
			input: `SELECT E'a\'`,
			want: []tok{
				{TokenWord, "SELECT"}, {TokenInvalid, `E'a\'`},
			},
		},
		{
			name:  "unterminated dollar quote",
			input: "SELECT $q$ body",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenInvalid, "$q$ body"},
			},
		},
		{
			name:  "non-breaking space is part of a word",
			input: "a\u00a0b",
			want: []tok{
				{TokenWord, "a\u00a0b"},
			},
		},
		{
			name:  "unicode identifier",
			input: "SELECT 銷量 FROM vgs_view",
			want: []tok{
				{TokenWord, "SELECT"}, {TokenWord, "銷量"}, {TokenWord, "FROM"}, {TokenWord, "vgs_view"},
			},
		},
		{
			name:  "minus is not a comment",
			input: "a - b",
			want: []tok{
				{TokenWord, "a"}, {TokenPunct, "-"}, {TokenWord, "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) returned %d tokens, want %d: %+v", tt.input, len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].Kind != w.kind || got[i].Value != w.value {
					t.Errorf("token %d = %s %q, want %s %q", i, got[i].Kind, got[i].Value, w.kind, w.value)
				}
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	input := "SELECT  'a' FROM x"
	tokens := Tokenize(input)

	for _, tok := range tokens {
		if tok.Start < 0 || tok.End > len(input) || tok.Start >= tok.End {
			t.Fatalf("bad offsets for %+v", tok)
		}
	}

	if got := input[tokens[1].Start:tokens[1].End]; got != "'a'" {
		t.Errorf("string token spans %q, want %q", got, "'a'")
	}
}
