package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Name":        "Name",
		"HomeAddress": "Home Address",
		"zipCode":     "Zip Code",
		"APIKey":      "API Key",
		"first_name":  "First Name",
		"ID":          "ID",
		"UserID":      "User ID",
		"id":          "Id",
		"":            "",
	}

	for in, want := range cases {
		assert.Equal(t, want, humanize(in), "humanize(%q)", in)
	}
}
