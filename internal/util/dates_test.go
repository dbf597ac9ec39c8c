package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("ISO string", func(t *testing.T) {
		d, err := NormalizeDate("2023-06-15")
		require.NoError(t, err)
		require.Equal(t, NewDate(2023, 6, 15), d)
	})

	t.Run("time.Time truncates to UTC midnight", func(t *testing.T) {
		in := time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC)
		d, err := NormalizeDate(in)
		require.NoError(t, err)
		require.Equal(t, NewDate(2023, 6, 15), d)
	})

	t.Run("zero time is rejected", func(t *testing.T) {
		_, err := NormalizeDate(time.Time{})
		require.Error(t, err)
	})

	t.Run("non-ISO strings are rejected", func(t *testing.T) {
		for _, s := range []string{"06/15/2023", "2023-6-15", "20230615", ""} {
			_, err := NormalizeDate(s)
			require.Error(t, err, "input %q", s)
		}
	})

	t.Run("unsupported type is rejected", func(t *testing.T) {
		_, err := NormalizeDate(42)
		require.Error(t, err)
	})
}

func TestMonthHelpers(t *testing.T) {
	d := NewDate(2023, 6, 15)

	require.Equal(t, NewDate(2023, 6, 1), MonthStart(d))
	require.Equal(t, "2023-06", MonthKey(d))

	require.Equal(t, 0, MonthsBetween(d, NewDate(2023, 6, 30)))
	require.Equal(t, 7, MonthsBetween(d, NewDate(2024, 1, 1)))
	require.Equal(t, -6, MonthsBetween(d, NewDate(2022, 12, 1)))
}
