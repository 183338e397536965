package template

import "testing"

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Typ
	}
	return out
}

func assertTypes(t *testing.T, toks []Token, want ...TokenType) {
	t.Helper()
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexPlainText(t *testing.T) {
	toks, err := Lex("t", "hello world")
	if err != nil {
		t.Fatal(err)
	}
	assertTypes(t, toks, TokenText, TokenEOF)
	if toks[0].Val != "hello world" {
		t.Errorf("text = %q", toks[0].Val)
	}
}

func TestLexEmitTag(t *testing.T) {
	toks, err := Lex("t", "a {{ name }} b")
	if err != nil {
		t.Fatal(err)
	}
	assertTypes(t, toks, TokenText, TokenEmitOpen, TokenIdentifier, TokenEmitClose, TokenText, TokenEOF)
	if toks[2].Val != "name" {
		t.Errorf("identifier = %q", toks[2].Val)
	}
}

func TestLexCommentTagHasNoInteriorTokens(t *testing.T) {
	toks, err := Lex("t", "a {# this { is % not {{ tokenized #} b")
	if err != nil {
		t.Fatal(err)
	}
	assertTypes(t, toks, TokenText, TokenCommentOpen, TokenCommentClose, TokenText, TokenEOF)
}

func TestLexBorderFlags(t *testing.T) {
	toks, err := Lex("t", "A{%- do 1 -%}B")
	if err != nil {
		t.Fatal(err)
	}
	// TokenText("A"), TokenTagOpen(left=-), TokenIdentifier(do), TokenInt(1),
	// TokenTagClose(right=-), TokenText("B"), EOF
	assertTypes(t, toks, TokenText, TokenTagOpen, TokenIdentifier, TokenInt, TokenTagClose, TokenText, TokenEOF)
	if toks[1].LeftFlag != FlagTrim {
		t.Errorf("left flag = %v, want FlagTrim", toks[1].LeftFlag)
	}
	if toks[4].RightFlag != FlagTrim {
		t.Errorf("right flag = %v, want FlagTrim", toks[4].RightFlag)
	}
}

func TestLexCompartmentPrefixIdentifier(t *testing.T) {
	toks, err := Lex("t", "{{ g@count }}")
	if err != nil {
		t.Fatal(err)
	}
	assertTypes(t, toks, TokenEmitOpen, TokenIdentifier, TokenEmitClose, TokenEOF)
	if toks[1].Val != "g@count" {
		t.Errorf("identifier = %q, want %q", toks[1].Val, "g@count")
	}
}

func TestLexKeywords(t *testing.T) {
	toks, err := Lex("t", "{{ a and not b or c }}")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range toks {
		if tok.Typ == TokenKeyword {
			got = append(got, tok.Val)
		}
	}
	want := []string{"and", "not", "or"}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLexSymbolsLongestMatchFirst(t *testing.T) {
	toks, err := Lex("t", "{{ a == b != c }}")
	if err != nil {
		t.Fatal(err)
	}
	var symbols []string
	for _, tok := range toks {
		if tok.Typ == TokenSymbol {
			symbols = append(symbols, tok.Val)
		}
	}
	if len(symbols) != 2 || symbols[0] != "==" || symbols[1] != "!=" {
		t.Errorf("symbols = %v, want [== !=]", symbols)
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex("t", `{{ "a\nb\tc\\d\"e" }}`)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb\tc\\d\"e"
	if toks[1].Val != want {
		t.Errorf("string = %q, want %q", toks[1].Val, want)
	}
}

func TestLexNumberLiterals(t *testing.T) {
	toks, err := Lex("t", "{{ 42 3.14 }}")
	if err != nil {
		t.Fatal(err)
	}
	if toks[1].Typ != TokenInt || toks[1].Val != "42" {
		t.Errorf("int = %v %q", toks[1].Typ, toks[1].Val)
	}
	if toks[2].Typ != TokenFloat || toks[2].Val != "3.14" {
		t.Errorf("float = %v %q", toks[2].Typ, toks[2].Val)
	}
}

func TestLexUnterminatedTagIsError(t *testing.T) {
	if _, err := Lex("t", "{{ a"); err == nil {
		t.Fatal("expected an error for an unterminated tag")
	}
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	if _, err := Lex("t", `{{ "abc }}`); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLexLineNumbers(t *testing.T) {
	toks, err := Lex("t", "line1\nline2 {{ x }}")
	if err != nil {
		t.Fatal(err)
	}
	// the emit tag opens on source line 2.
	for _, tok := range toks {
		if tok.Typ == TokenEmitOpen {
			if tok.Line != 2 {
				t.Errorf("emit open line = %d, want 2", tok.Line)
			}
			return
		}
	}
	t.Fatal("no emit-open token found")
}
