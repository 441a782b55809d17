package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-07-18")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2026-07-18", FormatDate(got))

	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2026, 4, 7, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		date    string
		want    bool
		wantErr bool
	}{
		{date: "2026-04-06", want: true},
		{date: "2026-04-07", want: false},
		{date: "2026-04-08", want: false},
		{date: "bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := IsPastDate(tt.date, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPastDates(t *testing.T) {
	now := time.Date(2026, 9, 24, 0, 0, 0, 0, time.UTC)
	dates := []string{"2026-04-07", "2026-09-23", "2026-09-24", "2026-10-22", "nope"}

	assert.Equal(t, []string{"2026-04-07", "2026-09-23"}, PastDates(dates, now))
	assert.Empty(t, PastDates(dates, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPastDates_Distinct(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	dates := []string{"2026-04-07", "2026-09-23", "2026-09-23", "2026-04-07", "2026-10-22"}

	assert.Equal(t, []string{"2026-04-07", "2026-09-23"}, PastDates(dates, now))
}
