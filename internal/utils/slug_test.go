package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "portuguese diacritics",
			input:    "Notícias de Verão",
			expected: "noticias-de-verao",
		},
		{
			name:     "cedilla",
			input:    "Eleição em Foz do Iguaçu",
			expected: "eleicao-em-foz-do-iguacu",
		},
		{
			name:     "punctuation stripped",
			input:    "Obras: ponte da Integração, 2ª etapa!",
			expected: "obras-ponte-da-integracao-2a-etapa",
		},
		{
			name:     "multiple spaces collapse",
			input:    "Foz   em    Destaque",
			expected: "foz-em-destaque",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    " - Foz - ",
			expected: "foz",
		},
		{
			name:     "already a slug",
			input:    "ja-e-um-slug",
			expected: "ja-e-um-slug",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "!!! ???",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
