package services

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/metrics"
	"altura-admin/internal/repositories"
	"altura-admin/internal/utils"

	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/xuri/excelize/v2"
)

// Export kinds accepted by /admin/reports/export.*.
const (
	KindBookings = "bookings"
	KindPackages = "packages"
	KindDates    = "dates"
)

// Record is one export row with ordered keys. The first record of an
// export decides the header.
type Record struct {
	keys []string
	vals map[string]string
}

func NewRecord() *Record {
	return &Record{vals: map[string]string{}}
}

// Set stores v under key, appending key on first use.
func (r *Record) Set(key string, v any) *Record {
	if r.vals == nil {
		r.vals = map[string]string{}
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = fmt.Sprint(v)
	return r
}

func (r Record) Keys() []string { return r.keys }

func (r Record) Get(key string) string { return r.vals[key] }

// EncodeCSV writes the header from the first record and one line per record,
// every field double-quoted. An empty input is an EmptyPayloadError.
func EncodeCSV(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, domain.EmptyPayloadError{Resource: "export"}
	}
	header := records[0].Keys()

	var sb strings.Builder
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
			sb.WriteByte('"')
		}
	}
	writeLine(header)
	for _, rec := range records {
		sb.WriteByte('\n')
		fields := make([]string, len(header))
		for i, k := range header {
			fields[i] = rec.Get(k)
		}
		writeLine(fields)
	}
	return []byte(sb.String()), nil
}

// ExportFilename is "<kind>-<YYYY-MM-DD>.<ext>" with kind slugged.
func ExportFilename(kind, ext string, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", slug.Make(kind), at.In(time.Local).Format("2006-01-02"), ext)
}

// bookingExportRow is the flat bookings sheet. Field order is column order
// and the export tag is the column name.
type bookingExportRow struct {
	ID            int64  `export:"id"`
	Fullname      string `export:"fullname"`
	Destination   string `export:"destination"`
	BookingDate   string `export:"booking_date"`
	DepartureDate string `export:"departure_date"`
	HargaAsli     int64  `export:"harga_asli"`
	HargaDiskon   int64  `export:"harga_diskon"`
	TotalPrice    int64  `export:"total_price"`
	Status        string `export:"status"`
}

var exportCopyOption = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: models.Date{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			d, ok := src.(models.Date)
			if !ok {
				return nil, fmt.Errorf("expected models.Date, got %T", src)
			}
			return d.String(), nil
		},
	}},
}

// toExportRow flattens b into the bookings sheet row.
func toExportRow(b models.Booking) (bookingExportRow, error) {
	var row bookingExportRow
	if err := copier.CopyWithOption(&row, &b, exportCopyOption); err != nil {
		return bookingExportRow{}, err
	}
	return row, nil
}

// recordFrom builds a record from the export-tagged fields of a struct.
func recordFrom(v any) *Record {
	rv := reflect.Indirect(reflect.ValueOf(v))
	rt := rv.Type()
	r := NewRecord()
	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("export")
		if key == "" {
			continue
		}
		r.Set(key, rv.Field(i).Interface())
	}
	return r
}

// RecordsFor flattens one part of rep into export records.
func RecordsFor(kind string, rep Report) ([]Record, error) {
	out := []Record{}
	switch kind {
	case KindBookings, "":
		for _, b := range rep.Bookings {
			row, err := toExportRow(b)
			if err != nil {
				return nil, domain.InternalError{Msg: "gagal menyiapkan data export", Err: err}
			}
			out = append(out, *recordFrom(row))
		}
	case KindPackages:
		for _, p := range rep.Packages {
			out = append(out, *groupRecord(NewRecord().Set("destination", p.Destination), p.GroupReport))
		}
	case KindDates:
		for _, d := range rep.Dates {
			r := NewRecord().Set("date", d.Date.String()).Set("label", d.Label)
			out = append(out, *groupRecord(r, d.GroupReport))
		}
	default:
		return nil, domain.ValidationError{Field: "kind", Msg: "jenis export harus bookings, packages atau dates"}
	}
	return out, nil
}

func groupRecord(r *Record, g GroupReport) *Record {
	return r.
		Set("totalBookings", g.TotalBookings).
		Set("totalRevenue", g.TotalRevenue).
		Set("averageRevenue", g.AverageRevenue()).
		Set("confirmedBookings", g.ConfirmedBookings).
		Set("pendingBookings", g.PendingBookings).
		Set("cancelledBookings", g.CancelledBookings)
}

// ExportService renders exports and keeps the export history.
type ExportService struct {
	Logs        repositories.ExportLogRepository
	RequestID   string
	RequestedBy string
	Now         func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CSV exports one report kind.
func (s ExportService) CSV(ctx context.Context, kind string, rep Report) ([]byte, string, error) {
	if kind == "" {
		kind = KindBookings
	}
	records, err := RecordsFor(kind, rep)
	if err != nil {
		return nil, "", err
	}
	data, err := EncodeCSV(records)
	if err != nil {
		return nil, "", err
	}
	filename := ExportFilename(kind, "csv", s.now())
	s.Record(ctx, kind, "csv", filename, len(records))
	return data, filename, nil
}

// XLSX exports the bookings, both rollups and the summary as one workbook.
func (s ExportService) XLSX(ctx context.Context, rep Report) ([]byte, string, error) {
	if len(rep.Bookings) == 0 {
		return nil, "", domain.EmptyPayloadError{Resource: "export"}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []struct {
		name string
		kind string
	}{
		{"Bookings", KindBookings},
		{"Paket", KindPackages},
		{"Tanggal", KindDates},
	}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, "", err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, "", err
		}
		records, err := RecordsFor(sh.kind, rep)
		if err != nil {
			return nil, "", err
		}
		if err := writeSheet(f, sh.name, records); err != nil {
			return nil, "", err
		}
	}

	if _, err := f.NewSheet("Ringkasan"); err != nil {
		return nil, "", err
	}
	sum := rep.Summary
	summary := [][]any{
		{"Total Booking", sum.TotalBookings},
		{"Total Pendapatan", sum.TotalRevenue},
		{"Confirmed", sum.ConfirmedBookings, sum.ConfirmedPercent()},
		{"Pending", sum.PendingBookings, sum.PendingPercent()},
		{"Cancelled", sum.CancelledBookings, sum.CancelledPercent()},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Ringkasan", cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}
	filename := ExportFilename("laporan-booking", "xlsx", s.now())
	s.Record(ctx, "report", "xlsx", filename, len(rep.Bookings))
	return buf.Bytes(), filename, nil
}

func writeSheet(f *excelize.File, sheet string, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	header := records[0].Keys()
	row := make([]any, len(header))
	for i, k := range header {
		row[i] = k
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	for r, rec := range records {
		vals := make([]any, len(header))
		for i, k := range header {
			vals[i] = rec.Get(k)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

// Record adds a finished export to the history and the export counter.
// History failures are logged, never returned.
func (s ExportService) Record(ctx context.Context, kind, format, filename string, rows int) {
	metrics.Exports.WithLabelValues(kind, format).Inc()
	utils.LogEvent(s.RequestID, "export", "export_"+format, fmt.Sprintf("kind=%s rows=%d file=%s", kind, rows, filename))
	if !s.Logs.Enabled() {
		return
	}
	_, err := s.Logs.Insert(ctx, repositories.ExportLog{
		Kind:        kind,
		Format:      format,
		Filename:    filename,
		Rows:        rows,
		RequestedBy: s.RequestedBy,
	})
	if err != nil {
		utils.LogError(s.RequestID, "export", "record_history", err)
	}
}

// History lists recent exports, newest first.
func (s ExportService) History(ctx context.Context, limit int) ([]repositories.ExportLog, error) {
	return s.Logs.ListRecent(ctx, limit)
}
