package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeHeader(t *testing.T) {
	cases := map[string]string{
		"DESCRIPCIÓN": "Descripcion",
		"descripcion": "Descripcion",
		"Descripción": "Descripcion",
		"tributos":    "Tributos",
		"IDDTE":       "Iddte",
		"Código":      "Codigo",
		"CODIGO":      "Codigo",
		"":            "",
	}

	for in, want := range cases {
		assert.Equal(t, want, CanonicalizeHeader(in), "CanonicalizeHeader(%q)", in)
	}
}
