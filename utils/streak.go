package utils

import (
	"math"
	"sort"
	"strings"

	"habitTrackerAPI/internal/record"
)

type MonthSummary struct {
	Month          string
	CompletedDays  int
	TotalDays      int
	CompletionRate int
}

// CurrentStreak counts checked days walking back from today. A missing day
// ends the streak, and so does an unchecked record on the expected day.
func CurrentStreak(marks []record.DayMark, today string) int {
	sorted := make([]record.DayMark, len(marks))
	copy(sorted, marks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	streak := 0
	expected := today
	for _, m := range sorted {
		if m.Date == expected && m.Checked {
			streak++
			prev, err := PreviousDate(expected)
			if err != nil {
				break
			}
			expected = prev
		} else if m.Date < expected {
			break
		}
	}
	return streak
}

// LongestStreak is the longest run of checked rows in date order. Days with
// no row are not seen here, so a gap does not break a run.
func LongestStreak(marks []record.DayMark) int {
	sorted := make([]record.DayMark, len(marks))
	copy(sorted, marks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	longest, run := 0, 0
	for _, m := range sorted {
		if m.Checked {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func SummarizeMonth(marks []record.DayMark, month string) MonthSummary {
	summary := MonthSummary{Month: month}
	for _, m := range marks {
		if !strings.HasPrefix(m.Date, month) {
			continue
		}
		summary.TotalDays++
		if m.Checked {
			summary.CompletedDays++
		}
	}
	summary.CompletionRate = CompletionRate(summary.CompletedDays, summary.TotalDays)
	return summary
}
