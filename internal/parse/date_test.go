package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "Standard date",
			raw:      "2025-03-14",
			expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Surrounding whitespace",
			raw:      "  2025-03-14  ",
			expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Wrong layout",
			raw:       "14/03/2025",
			expectErr: true,
		},
		{
			name:      "Empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "Date with time suffix",
			raw:       "2025-03-14 09:30",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got))
		})
	}
}

func TestOptionalDate(t *testing.T) {
	got, err := OptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = OptionalDate("2025-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), got.UTC())

	_, err = OptionalDate("bogus")
	assert.Error(t, err)
}
