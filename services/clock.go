package services

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// dateOrToday validates a YYYY-MM-DD date, defaulting to today
func dateOrToday(date string, now time.Time) (string, error) {
	if date == "" {
		return now.Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", Validation("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}
