package services

import (
	"sort"
	"strings"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/utils"

	"github.com/shopspring/decimal"
)

// ReportFilter selects bookings for the list and every report built from it.
// Zero dates and "" / "all" destination or status disable that predicate.
type ReportFilter struct {
	StartDate   models.Date `json:"startDate"`
	EndDate     models.Date `json:"endDate"`
	Destination string      `json:"destination"`
	Status      string      `json:"status"`
}

// ParseReportFilter builds a filter from raw query values. Destination and
// status are kept verbatim for exact matching.
func ParseReportFilter(start, end, destination, status string) (ReportFilter, error) {
	var f ReportFilter
	var err error
	if f.StartDate, err = models.ParseDate(start); err != nil {
		return ReportFilter{}, domain.ValidationError{Field: "start_date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	if f.EndDate, err = models.ParseDate(end); err != nil {
		return ReportFilter{}, domain.ValidationError{Field: "end_date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.StartDate.After(f.EndDate) {
		return ReportFilter{}, domain.ValidationError{Field: "end_date", Msg: "tanggal akhir sebelum tanggal awal"}
	}
	f.Destination = destination
	f.Status = status
	return f, nil
}

func active(v string) bool {
	return v != "" && v != domain.FilterAll
}

// Match applies the four predicates in order and stops at the first miss.
// Destination and status compare exactly, without case folding.
func (f ReportFilter) Match(b models.Booking) bool {
	if !f.StartDate.IsZero() && (b.BookingDate.IsZero() || b.BookingDate.Before(f.StartDate)) {
		return false
	}
	if !f.EndDate.IsZero() && (b.BookingDate.IsZero() || b.BookingDate.After(f.EndDate)) {
		return false
	}
	if active(f.Destination) && b.Destination != f.Destination {
		return false
	}
	if active(f.Status) && b.Status != f.Status {
		return false
	}
	return true
}

// GroupReport holds the counters shared by every rollup.
type GroupReport struct {
	TotalBookings     int   `json:"totalBookings"`
	TotalRevenue      int64 `json:"totalRevenue"`
	ConfirmedBookings int   `json:"confirmedBookings"`
	PendingBookings   int   `json:"pendingBookings"`
	CancelledBookings int   `json:"cancelledBookings"`
}

func (g *GroupReport) add(b models.Booking) {
	g.TotalBookings++
	g.TotalRevenue += b.TotalPrice
	switch b.Status {
	case domain.StatusConfirmed:
		g.ConfirmedBookings++
	case domain.StatusPending:
		g.PendingBookings++
	case domain.StatusCancelled:
		g.CancelledBookings++
	}
}

// AverageRevenue is revenue per booking rounded to whole rupiah.
func (g GroupReport) AverageRevenue() int64 {
	if g.TotalBookings == 0 {
		return 0
	}
	avg := decimal.NewFromInt(g.TotalRevenue).Div(decimal.NewFromInt(int64(g.TotalBookings)))
	return avg.Round(0).IntPart()
}

// Summary is the top-level counter block of the filtered list.
type Summary struct {
	GroupReport
}

func (s Summary) ConfirmedPercent() string { return Percent(s.ConfirmedBookings, s.TotalBookings) }
func (s Summary) PendingPercent() string   { return Percent(s.PendingBookings, s.TotalBookings) }
func (s Summary) CancelledPercent() string { return Percent(s.CancelledBookings, s.TotalBookings) }

// Percent renders part/total as "33,3%". An empty total renders "0%".
func Percent(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
	return strings.Replace(pct.String(), ".", ",", 1) + "%"
}

// PackageReport is the per-destination rollup row.
type PackageReport struct {
	Destination string `json:"destination"`
	GroupReport
}

// DateReport is the per-booking-day rollup row.
type DateReport struct {
	Date  models.Date `json:"date"`
	Label string      `json:"label"`
	GroupReport
}

// Report bundles everything one render needs.
type Report struct {
	Filter       ReportFilter     `json:"filter"`
	Bookings     []models.Booking `json:"bookings"`
	Summary      Summary          `json:"summary"`
	Packages     []PackageReport  `json:"packages"`
	Dates        []DateReport     `json:"dates"`
	Destinations []string         `json:"destinations"`
	Statuses     []string         `json:"statuses"`
}

// ReportsService turns a booking collection into the filtered list and its
// rollups. It is pure: no I/O and inputs are never modified.
type ReportsService struct{}

// FilterBookings returns matching bookings, newest booking date first.
// Equal dates keep their collection order.
func (ReportsService) FilterBookings(bookings []models.Booking, f ReportFilter) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BookingDate.After(out[j].BookingDate)
	})
	return out
}

func (ReportsService) Summarize(filtered []models.Booking) Summary {
	var s Summary
	for _, b := range filtered {
		s.add(b)
	}
	return s
}

// PackageRollup groups by destination, highest revenue first.
func (ReportsService) PackageRollup(filtered []models.Booking) []PackageReport {
	index := map[string]int{}
	out := []PackageReport{}
	for _, b := range filtered {
		i, ok := index[b.Destination]
		if !ok {
			i = len(out)
			index[b.Destination] = i
			out = append(out, PackageReport{Destination: b.Destination})
		}
		out[i].add(b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue > out[j].TotalRevenue
	})
	return out
}

// DateRollup groups by booking day, newest day first. Sorting uses the day
// itself; Label is for display only.
func (ReportsService) DateRollup(filtered []models.Booking) []DateReport {
	index := map[int64]int{}
	out := []DateReport{}
	for _, b := range filtered {
		key := b.BookingDate.Unix()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DateReport{Date: b.BookingDate, Label: utils.FormatDateLong(b.BookingDate.Time)})
		}
		out[i].add(b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Build runs the filter and every rollup over one collection.
func (s ReportsService) Build(bookings []models.Booking, f ReportFilter) Report {
	filtered := s.FilterBookings(bookings, f)
	return Report{
		Filter:       f,
		Bookings:     filtered,
		Summary:      s.Summarize(filtered),
		Packages:     s.PackageRollup(filtered),
		Dates:        s.DateRollup(filtered),
		Destinations: distinct(bookings, func(b models.Booking) string { return b.Destination }),
		Statuses:     distinct(bookings, func(b models.Booking) string { return b.Status }),
	}
}

func distinct(bookings []models.Booking, key func(models.Booking) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, b := range bookings {
		k := key(b)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
