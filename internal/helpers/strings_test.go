package helpers_test

import (
	"testing"

	"github.com/isometry/hookctl/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Length   int
		Expected string
	}{
		{
			Name:     "short",
			Input:    "abc",
			Length:   8,
			Expected: "abc",
		},
		{
			Name:     "exact",
			Input:    "abcdefgh",
			Length:   8,
			Expected: "abcdefgh",
		},
		{
			Name:     "long",
			Input:    `{"type":"Message","event":{}}`,
			Length:   10,
			Expected: `{"type"...`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.Truncate(tc.Input, tc.Length))
		})
	}
}
