package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitTrackerAPI/internal/record"
)

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		marks []record.DayMark
		today string
		want  int
	}{
		{
			name:  "no records",
			marks: nil,
			today: "2024-05-10",
			want:  0,
		},
		{
			name: "today missing",
			marks: []record.DayMark{
				{Date: "2024-05-08", Checked: true},
				{Date: "2024-05-09", Checked: true},
			},
			today: "2024-05-10",
			want:  0,
		},
		{
			name: "today unchecked",
			marks: []record.DayMark{
				{Date: "2024-05-09", Checked: true},
				{Date: "2024-05-10", Checked: false},
			},
			today: "2024-05-10",
			want:  0,
		},
		{
			name: "three consecutive days then a gap",
			marks: []record.DayMark{
				{Date: "2024-05-05", Checked: true},
				{Date: "2024-05-08", Checked: true},
				{Date: "2024-05-09", Checked: true},
				{Date: "2024-05-10", Checked: true},
			},
			today: "2024-05-10",
			want:  3,
		},
		{
			name: "unchecked day inside the run stops it",
			marks: []record.DayMark{
				{Date: "2024-05-07", Checked: true},
				{Date: "2024-05-08", Checked: false},
				{Date: "2024-05-09", Checked: true},
				{Date: "2024-05-10", Checked: true},
			},
			today: "2024-05-10",
			want:  2,
		},
		{
			name: "crosses a month boundary",
			marks: []record.DayMark{
				{Date: "2024-02-28", Checked: true},
				{Date: "2024-02-29", Checked: true},
				{Date: "2024-03-01", Checked: true},
			},
			today: "2024-03-01",
			want:  3,
		},
		{
			name: "records after today are ignored",
			marks: []record.DayMark{
				{Date: "2024-05-10", Checked: true},
				{Date: "2024-05-11", Checked: true},
			},
			today: "2024-05-10",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.marks, tt.today))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	marks := []record.DayMark{
		{Date: "2024-05-01", Checked: true},
		{Date: "2024-05-02", Checked: true},
		{Date: "2024-05-03", Checked: false},
		{Date: "2024-05-04", Checked: true},
	}
	assert.Equal(t, 2, LongestStreak(marks))
}

func TestLongestStreakIgnoresCalendarGaps(t *testing.T) {
	// 05-02 has no row, so the run continues across it.
	marks := []record.DayMark{
		{Date: "2024-05-01", Checked: true},
		{Date: "2024-05-03", Checked: true},
		{Date: "2024-05-04", Checked: true},
	}
	assert.Equal(t, 3, LongestStreak(marks))
	assert.Equal(t, 2, CurrentStreak(marks, "2024-05-04"))
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 100, CompletionRate(4, 4))
	assert.Equal(t, 67, CompletionRate(2, 3))
	assert.Equal(t, 50, CompletionRate(1, 2))
}

func TestSummarizeMonth(t *testing.T) {
	marks := []record.DayMark{
		{Date: "2024-01-31", Checked: true},
		{Date: "2024-02-01", Checked: true},
		{Date: "2024-02-02", Checked: false},
		{Date: "2024-02-03", Checked: true},
		{Date: "2024-03-01", Checked: true},
	}

	summary := SummarizeMonth(marks, "2024-02")
	assert.Equal(t, MonthSummary{Month: "2024-02", CompletedDays: 2, TotalDays: 3, CompletionRate: 67}, summary)

	empty := SummarizeMonth(marks, "2023-12")
	assert.Equal(t, 0, empty.TotalDays)
	assert.Equal(t, 0, empty.CompletionRate)
}
