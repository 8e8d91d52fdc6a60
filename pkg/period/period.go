// Package period 把报表中的相对时间段名称换算成具体的时间区间
package period

import (
	"fmt"
	"time"
)

// 前端可用的时间段名称
const (
	Today        = "Today"
	Yesterday    = "Yesterday"
	Last7Days    = "7days"
	CurrentWeek  = "CurrentWeek"
	LastWeek     = "LastWeek"
	CurrentMonth = "CurrentMonth"
	LastMonth    = "LastMonth"
	ThisYear     = "ThisYear"
	LastYear     = "LastYear"
)

// Names 所有合法的时间段名称
var Names = []string{
	Today, Yesterday, Last7Days,
	CurrentWeek, LastWeek,
	CurrentMonth, LastMonth,
	ThisYear, LastYear,
}

// Valid 判断名称是否合法
func Valid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Range 把时间段名称换算成半开区间 [start, end)。
//
// now 由调用方注入，便于测试。周以周一为第一天。
func Range(name string, now time.Time) (start, end time.Time, err error) {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	switch name {
	case Today:
		return today, tomorrow, nil

	case Yesterday:
		return today.AddDate(0, 0, -1), today, nil

	case Last7Days:
		return today.AddDate(0, 0, -7), tomorrow, nil

	case CurrentWeek:
		return mondayOf(today), tomorrow, nil

	case LastWeek:
		monday := mondayOf(today)
		return monday.AddDate(0, 0, -7), monday, nil

	case CurrentMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, 0), nil

	case LastMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first.AddDate(0, -1, 0), first, nil

	case ThisYear:
		first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(1, 0, 0), nil

	case LastYear:
		first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return first.AddDate(-1, 0, 0), first, nil
	}

	return start, end, fmt.Errorf("unknown period name: %s", name)
}

// startOfDay 当天零点
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf 所在周的周一零点
func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
