package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-15 是周五
var friday = time.Date(2024, 3, 15, 14, 30, 12, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRange(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{Today, date(2024, 3, 15), date(2024, 3, 16)},
		{Yesterday, date(2024, 3, 14), date(2024, 3, 15)},
		{Last7Days, date(2024, 3, 8), date(2024, 3, 16)},
		{CurrentWeek, date(2024, 3, 11), date(2024, 3, 16)},
		{LastWeek, date(2024, 3, 4), date(2024, 3, 11)},
		{CurrentMonth, date(2024, 3, 1), date(2024, 4, 1)},
		{LastMonth, date(2024, 2, 1), date(2024, 3, 1)},
		{ThisYear, date(2024, 1, 1), date(2025, 1, 1)},
		{LastYear, date(2023, 1, 1), date(2024, 1, 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start, end, err := Range(c.name, friday)
			require.NoError(t, err)
			assert.Equal(t, c.start, start)
			assert.Equal(t, c.end, end)
		})
	}
}

func TestRangeOnMonday(t *testing.T) {
	// 周一当天，CurrentWeek 的起点应该就是当天
	monday := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	start, end, err := Range(CurrentWeek, monday)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 11), start)
	assert.Equal(t, date(2024, 3, 12), end)
}

func TestRangeOnSunday(t *testing.T) {
	// 周日属于上一个周一开始的那一周
	sunday := time.Date(2024, 3, 17, 23, 59, 59, 0, time.UTC)

	start, _, err := Range(CurrentWeek, sunday)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 11), start)
}

func TestRangeUnknownName(t *testing.T) {
	_, _, err := Range("NextWeek", friday)
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("LastMonth"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("lastmonth"))
}
