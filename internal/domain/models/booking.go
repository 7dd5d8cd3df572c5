package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Booking mirrors the admin booking payload of the booking API.
type Booking struct {
	ID            int64       `json:"id"`
	Fullname      string      `json:"fullname"`
	Destination   string      `json:"destination"`
	BookingDate   Date        `json:"booking_date"`
	DepartureDate Date        `json:"departure_date"`
	ReturnDate    Date        `json:"return_date"`
	TotalPrice    int64       `json:"total_price"`
	HargaAsli     int64       `json:"harga_asli"`
	HargaDiskon   int64       `json:"harga_diskon"`
	Status        string      `json:"status"`
	Attachments   Attachments `json:"upload_bukti"`
}

// BookingList is the data part of GET /api/admin/booking.
type BookingList struct {
	Bookings     []Booking `json:"bookings"`
	TotalRevenue *int64    `json:"totalRevenue,omitempty"`
}

// BookingDetail is the data part of GET /api/admin/bookings/{id}.
type BookingDetail struct {
	Booking *Booking `json:"booking"`
}

// Envelope is the common {data, status} wrapper of the booking API.
type Envelope[T any] struct {
	Data   T      `json:"data"`
	Status string `json:"status"`
}

// Attachments holds proof-of-payment URLs. The API sends the field as null,
// a single string or a list; all three decode into one ordered slice.
type Attachments []string

func (a *Attachments) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = nil
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = cleanAttachments([]string{s})
		return nil
	case '[':
		var raw []any
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		list := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				list = append(list, s)
			}
		}
		*a = cleanAttachments(list)
		return nil
	}
	return fmt.Errorf("upload_bukti: unsupported json value %s", string(b))
}

func cleanAttachments(in []string) Attachments {
	out := make(Attachments, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

const dateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// Date is a calendar day. Timestamps are converted to time.Local before the
// time of day is dropped.
type Date struct {
	time.Time
}

// NewDate returns the day of t in time.Local.
func NewDate(t time.Time) Date {
	t = t.In(time.Local)
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)}
}

// ParseDate accepts YYYY-MM-DD, RFC3339 and "YYYY-MM-DD HH:MM:SS".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("tanggal tidak valid: %q", s)
}

// MustDate is ParseDate for literals in tests and fixtures.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
