package utils

import (
	"fmt"
	"time"
)

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDateLong renders "5 Januari 2024"; zero time renders "-".
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.In(time.Local)
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

// FormatDateShort renders "5/1/2024" (day/month/year).
func FormatDateShort(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.In(time.Local)
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
