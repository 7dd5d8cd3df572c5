package utils

import (
	"testing"
	"time"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:          "Rp 0",
		500:        "Rp 500",
		1500000:    "Rp 1.500.000",
		-250000:    "-Rp 250.000",
		1000000000: "Rp 1.000.000.000",
	}
	for in, want := range cases {
		if got := FormatRupiah(in); got != want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local)
	if got := FormatDateLong(d); got != "5 Januari 2024" {
		t.Fatalf("FormatDateLong = %q", got)
	}
	if got := FormatDateShort(d); got != "5/1/2024" {
		t.Fatalf("FormatDateShort = %q", got)
	}
	if got := FormatDateLong(time.Time{}); got != "-" {
		t.Fatalf("zero FormatDateLong = %q", got)
	}
}

func TestStrings(t *testing.T) {
	if Safe("  ", "-") != "-" || Safe(" x ", "-") != "x" {
		t.Fatalf("Safe did not trim or fall back")
	}
}
