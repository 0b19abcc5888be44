package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "pizza carbonara", "pizza carbonara"},
		{"mixed case", "Pizza Carbonara", "pizza carbonara"},
		{"surrounding whitespace", "  Pizza Carbonara \t", "pizza carbonara"},
		{"inner whitespace preserved", "pizza  carbonara", "pizza  carbonara"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.input))
		})
	}
}

func TestTitlesEqual(t *testing.T) {
	assert.True(t, TitlesEqual("Pizza Carbonara", "pizza carbonara "))
	assert.True(t, TitlesEqual(" PIZZA CARBONARA", "Pizza Carbonara"))
	assert.False(t, TitlesEqual("Pizza", "Pizza Carbonara"))
	assert.False(t, TitlesEqual("Pizza Carbonara", "Pizza  Carbonara"))
}
