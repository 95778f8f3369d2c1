package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"unshortener/pkg/domain"
)

func TestResolution_String(t *testing.T) {
	cases := []struct {
		name   string
		in     domain.Resolution
		out    string
		failed bool
	}{
		{
			name: "resolved yields the plain URL",
			in:   domain.Resolved("https://example.com/final"),
			out:  "https://example.com/final",
		},
		{
			name:   "network failure is prefixed",
			in:     domain.NetworkFailure(errors.New("dial tcp: connection refused")),
			out:    "Error: dial tcp: connection refused",
			failed: true,
		},
		{
			name:   "shortener loop",
			in:     domain.ShortenerFailure(),
			out:    "Error: Still on shortener domain",
			failed: true,
		},
		{
			name:   "out of range",
			in:     domain.OutOfRangeFailure(),
			out:    "Error: Column index out of range",
			failed: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, tc.in.String())
			require.Equal(t, tc.failed, tc.in.Failed())
		})
	}
}
