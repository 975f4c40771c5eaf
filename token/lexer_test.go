package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	toks, err := Tokenize(`select(name) %>% filter(age >= 18)`)
	assert.NoError(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		KwSelect, LParen, Ident, RParen,
		Pipe,
		KwFilter, LParen, Ident, Ge, Number, RParen,
		EOF,
	}, kinds)
}

func TestTokenizeSummariseBothSpellings(t *testing.T) {
	cases := map[string]string{
		"summarise(x = n())": "summarise",
		"summarize(x = n())": "summarize",
	}
	for src, want := range cases {
		toks, err := Tokenize(src)
		assert.NoError(t, err)
		assert.Equal(t, KwSummarise, toks[0].Kind)
		assert.Equal(t, want, toks[0].Text)
	}
}

func TestTokenizeLogicalOperatorsBothForms(t *testing.T) {
	for _, src := range []string{"a & b", "a && b"} {
		toks, err := Tokenize(src)
		assert.NoError(t, err)
		assert.Equal(t, And, toks[1].Kind)
	}
	for _, src := range []string{"a | b", "a || b"} {
		toks, err := Tokenize(src)
		assert.NoError(t, err)
		assert.Equal(t, Or, toks[1].Kind)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := Tokenize(`"a\"b\nc"`)
	assert.NoError(t, err)
	assert.Equal(t, "a\"b\nc", toks[0].Text)
}

func TestTokenizeUnrecognizedEscapePassesThrough(t *testing.T) {
	toks, err := Tokenize(`"a\qb"`)
	assert.NoError(t, err)
	assert.Equal(t, `a\qb`, toks[0].Text)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	assert.Error(t, err)
	var unterminated *UnterminatedStringError
	assert.ErrorAs(t, err, &unterminated)
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := Tokenize(`select(name) @ filter(x)`)
	var unexpected *UnexpectedCharacterError
	assert.ErrorAs(t, err, &unexpected)
	assert.Equal(t, '@', unexpected.Char)
}

func TestTokenizeNumberWithExponent(t *testing.T) {
	toks, err := Tokenize(`1.5e-3`)
	assert.NoError(t, err)
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, "1.5e-3", toks[0].Text)
}

func TestTokenizeCommentAttachesToFollowingToken(t *testing.T) {
	toks, err := Tokenize("# keep only adults\nfilter(age > 18)")
	assert.NoError(t, err)
	assert.Equal(t, "keep only adults", toks[0].LeadingComment)
}

func TestTokenizePipeOperator(t *testing.T) {
	toks, err := Tokenize(`a %>% b`)
	assert.NoError(t, err)
	assert.Equal(t, Pipe, toks[1].Kind)
	assert.Equal(t, "%>%", toks[1].Text)
}

func TestTokenizeWhitespaceAndCommentIrrelevance(t *testing.T) {
	a, err := Tokenize(`select(name)%>%filter(age>18)`)
	assert.NoError(t, err)
	b, err := Tokenize("select(name)   %>%   # a comment\n  filter(age > 18)   # trailing")
	assert.NoError(t, err)

	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Kind, b[i].Kind)
		assert.Equal(t, a[i].Text, b[i].Text)
	}
}
