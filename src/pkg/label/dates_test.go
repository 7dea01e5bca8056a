package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateFormats(t *testing.T) {
	cases := []struct {
		name        string
		token       string
		surrounding string
		want        string
	}{
		{"iso dash", "2024-10-01", "", "2024-10-01"},
		{"iso slash", "2024/10/1", "", "2024-10-01"},
		{"iso dot", "2024.1.5", "", "2024-01-05"},
		{"day first slash", "25/12/2024", "", "2024-12-25"},
		{"day first dot two digit year", "25.12.24", "", "2024-12-25"},
		{"two digit year before 70", "1/6/69", "", "2069-06-01"},
		{"two digit year from 70", "1/6/70", "", "1970-06-01"},
		{"month day year", "JAN 5 2024", "", "2024-01-05"},
		{"full month day year comma", "January 5, 2024", "", "2024-01-05"},
		{"day month year", "5 JAN 2024", "", "2024-01-05"},
		{"month year only", "OCT 2024", "", "2024-10-01"},
		{"partial with sniffed year", "OCT 24", "printed in 2024", "2024-10-01"},
		{"partial without sniffed year", "OCT 24", "", "2024-10-01"},
		{"partial sniffed year mismatch", "OCT 25", "printed in 2024", "2025-10-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.token, tc.surrounding)
			require.True(t, ok, "expected %q to normalize", tc.token)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDateRejectsNonDates(t *testing.T) {
	for _, token := range []string{"", "hello", "MKT 2024", "99/99/2024", "13", "2024-13-01"} {
		_, ok := NormalizeDate(token, "")
		assert.False(t, ok, "expected %q to be rejected", token)
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{"2024-10-01", "25/12/2024", "OCT 2024", "JAN 5 2024", "OCT 24"}
	for _, input := range inputs {
		first, ok := NormalizeDate(input, "2024")
		require.True(t, ok)

		second, ok := NormalizeDate(first, "2024")
		require.True(t, ok)
		assert.Equal(t, first, second, "normalizing %q twice must be stable", input)
	}
}

func TestSniffYear(t *testing.T) {
	assert.Equal(t, "2024", SniffYear("some label text 2024 more"))
	assert.Equal(t, "", SniffYear("no year here 1899"))
}
