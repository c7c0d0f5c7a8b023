package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Layouts(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want time.Time
	}{
		{"24/03/2025", time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC)},
		{"2025-03-24", time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC)},
		{"2025-03-24T10:30:00Z", time.Date(2025, 3, 24, 10, 30, 0, 0, time.UTC)},
	} {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.True(t, got.Equal(tc.want), "%s: got %v", tc.in, got)
	}
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"", "someday", "31/31/2025", "03-24-2025"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrUnparseable, in)
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "2025-03-24", Normalize("24/03/2025"))
	require.Equal(t, "2025-03-24", Normalize("2025-03-24"))
	// unparseable input passes through untouched
	require.Equal(t, "someday", Normalize("someday"))
}
