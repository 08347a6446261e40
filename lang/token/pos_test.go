package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	cases := []struct {
		name string
		pos  Position
		want string
	}{
		{"unknown", Position{}, "-"},
		{"no filename", Position{Line: 3}, "line 3"},
		{"filename and line", Position{Filename: "prog.pas", Line: 7}, "prog.pas:7"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.pos.String())
		})
	}
}

func TestPositionIsValid(t *testing.T) {
	assert.False(t, Position{}.IsValid())
	assert.False(t, Position{Filename: "x.pas"}.IsValid())
	assert.True(t, Position{Filename: "x.pas", Line: 1}.IsValid())
}
