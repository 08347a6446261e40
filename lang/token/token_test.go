package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := ILLEGAL; k < maxKind; k++ {
		require.NotEmpty(t, k.String(), "kind %d missing string representation", k)
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	for word, k := range Keywords {
		require.Equal(t, word, k.String())
	}
}

func TestIsTypeName(t *testing.T) {
	cases := []struct {
		k    Kind
		want bool
	}{
		{INTEGER, true},
		{REALTYPE, true},
		{BOOLEAN, true},
		{CHAR, true},
		{STRINGTYPE, true},
		{IDENT, false},
		{BEGIN, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.k.IsTypeName(), "kind %v", c.k)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENT, Value: "total"}
	require.Equal(t, "total", tok.String())

	tok = Token{Kind: BEGIN}
	require.Equal(t, "begin", tok.String())
}
