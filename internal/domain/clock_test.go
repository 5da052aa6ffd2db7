package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"05:00", 300, false},
		{"9:05", 545, false},
		{"22:30", 1350, false},
		{" 23:59 ", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"-1:00", 0, true},
		{"-0:30", 0, true},
		{"+9:05", 0, true},
		{"09:+5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "22:30", FormatClock(1350))
	assert.Equal(t, "00:10", FormatClock(MinutesPerDay+10))
}

func TestOnDay(t *testing.T) {
	base := time.Date(2026, 3, 14, 21, 7, 33, 0, time.Local)
	got := OnDay(base, 19*60+30)
	assert.Equal(t, time.Date(2026, 3, 14, 19, 30, 0, 0, time.Local), got)
}

func TestParseTaxMode(t *testing.T) {
	m, err := ParseTaxMode("External")
	require.NoError(t, err)
	assert.Equal(t, TaxExternal, m)

	m, err = ParseTaxMode("inclusive")
	require.NoError(t, err)
	assert.Equal(t, TaxInclusive, m)

	_, err = ParseTaxMode("vat")
	assert.ErrorIs(t, err, ErrUnknownTax)
}

func TestMenuSection(t *testing.T) {
	s := MenuSection{Category: CategoryDrink, Prices: []int{800, 600, 1500}}
	assert.True(t, s.Allows(600))
	assert.False(t, s.Allows(700))
	assert.Equal(t, 600, s.Cheapest())
	assert.Equal(t, 0, MenuSection{}.Cheapest())
}
