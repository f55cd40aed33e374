package services_test

import (
	"testing"
	"time"

	"fitlog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, p := range services.Periods {
		got, err := services.ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := services.ParsePeriod("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = services.ParsePeriod("last_decade")
	assert.Error(t, err)
}

func TestPeriod_Window(t *testing.T) {
	wednesday := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)
	monday := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, time.March, 17, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   services.Period
		now      time.Time
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "current week from wednesday",
			period:   services.PeriodCurrentWeek,
			now:      wednesday,
			wantFrom: monday,
			wantTo:   wednesday,
		},
		{
			name:     "current week on monday",
			period:   services.PeriodCurrentWeek,
			now:      monday.Add(time.Minute),
			wantFrom: monday,
			wantTo:   monday.Add(time.Minute),
		},
		{
			name:     "current week on sunday",
			period:   services.PeriodCurrentWeek,
			now:      sunday,
			wantFrom: monday,
			wantTo:   sunday,
		},
		{
			name:     "last week",
			period:   services.PeriodLastWeek,
			now:      wednesday,
			wantFrom: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			wantTo:   monday.Add(-time.Nanosecond),
		},
		{
			name:     "last month",
			period:   services.PeriodLastMonth,
			now:      wednesday,
			wantFrom: time.Date(2024, time.February, 12, 15, 30, 0, 0, time.UTC),
			wantTo:   wednesday,
		},
		{
			name:     "last year",
			period:   services.PeriodLastYear,
			now:      wednesday,
			wantFrom: time.Date(2023, time.March, 14, 15, 30, 0, 0, time.UTC),
			wantTo:   wednesday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.period.Window(tt.now)
			assert.True(t, tt.wantFrom.Equal(from), "from: want %s, got %s", tt.wantFrom, from)
			assert.True(t, tt.wantTo.Equal(to), "to: want %s, got %s", tt.wantTo, to)
		})
	}
}

func TestPeriod_Window_LastWeekCoversSunday(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)
	lateSunday := time.Date(2024, time.March, 10, 23, 59, 59, 999000000, time.UTC)

	from, to := services.PeriodLastWeek.Window(now)
	assert.False(t, lateSunday.Before(from))
	assert.False(t, lateSunday.After(to))
}
