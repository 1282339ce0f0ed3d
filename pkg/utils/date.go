package utils

import (
	"errors"
	"time"
)

var ErrEmptyDate = errors.New("date is empty")

// ParseDate lê uma data no formato 2006-01-02 como meia-noite UTC
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, ErrEmptyDate
	}

	return time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
}
