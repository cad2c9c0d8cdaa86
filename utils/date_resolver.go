package utils

import (
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// DateResolver pins one caller-local instant so every date derived during a
// request agrees with the others.
type DateResolver struct {
	local time.Time
}

// NewDateResolver shifts now by offsetMinutes. A nil offset keeps the server
// clock in UTC.
func NewDateResolver(now time.Time, offsetMinutes *int) DateResolver {
	local := now.UTC()
	if offsetMinutes != nil {
		local = local.Add(time.Duration(*offsetMinutes) * time.Minute)
	}
	return DateResolver{local: local}
}

func (d DateResolver) Today() string {
	return d.local.Format(DateLayout)
}

func (d DateResolver) DaysAgo(n int) string {
	day := time.Date(d.local.Year(), d.local.Month(), d.local.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -n).Format(DateLayout)
}

func (d DateResolver) CurrentMonth() string {
	return d.local.Format(MonthLayout)
}

// PreviousDate steps a YYYY-MM-DD key back one calendar day.
func PreviousDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}
