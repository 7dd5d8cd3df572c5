package services

import (
	"bytes"
	"fmt"
	"time"

	"altura-admin/internal/config"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/utils"

	"github.com/gosimple/slug"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Receipt is everything the receipt print page and PDF show.
type Receipt struct {
	Company   config.Company
	Booking   models.Booking
	Cost      ReceiptCost
	Reference string
	PrintedAt time.Time
}

// DocsService renders receipts and reports as PDF.
type DocsService struct {
	Company   config.Company
	RequestID string
	Now       func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BuildReceipt prepares the receipt of one booking.
func (s DocsService) BuildReceipt(b models.Booking) Receipt {
	return Receipt{
		Company:   s.Company,
		Booking:   b,
		Cost:      ReceiptTotal(b),
		Reference: fmt.Sprintf("ALT-%06d", b.ID),
		PrintedAt: s.now(),
	}
}

// ReceiptFilename is "receipt-<id>-<name>.pdf".
func ReceiptFilename(b models.Booking) string {
	name := slug.Make(b.Fullname)
	if name == "" {
		return fmt.Sprintf("receipt-%d.pdf", b.ID)
	}
	return fmt.Sprintf("receipt-%d-%s.pdf", b.ID, name)
}

// GenerateReceipt returns the receipt PDF and its download filename.
func (s DocsService) GenerateReceipt(b models.Booking) ([]byte, string, error) {
	r := s.BuildReceipt(b)
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", b.ID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(r.Company.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(r.Company.Address), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr(r.Company.Contact), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 7, "Laporan Booking Perjalanan", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	png, err := qrcode.Encode(r.Reference, qrcode.Medium, 256)
	if err != nil {
		return nil, "", fmt.Errorf("qr code: %w", err)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))
	pdf.ImageOptions("qr", 170, 12, 28, 28, false, opt, 0, "")

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, title, "B", 1, "", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 11)
	}
	row := func(label, value string) {
		pdf.CellFormat(55, 7, label, "", 0, "", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "", false, 0, "")
	}

	bk := r.Booking
	section("Detail Booking")
	row("ID Booking", fmt.Sprintf("#%d (%s)", bk.ID, r.Reference))
	row("Tanggal Booking", utils.FormatDateLong(bk.BookingDate.Time))
	row("Nama Pelanggan", utils.Safe(bk.Fullname, "-"))
	row("Status", utils.Safe(bk.Status, "-"))

	section("Detail Perjalanan")
	row("Destinasi", utils.Safe(bk.Destination, "-"))
	row("Tanggal Berangkat", utils.FormatDateLong(bk.DepartureDate.Time))
	if !bk.ReturnDate.IsZero() {
		row("Tanggal Kembali", utils.FormatDateLong(bk.ReturnDate.Time))
	}

	section("Rincian Biaya")
	row("Harga Asli", r.Cost.Original)
	if r.Cost.HasDiscount {
		row("Diskon", r.Cost.Discount)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(55, 9, "Total Bayar", "T", 0, "", false, 0, "")
	pdf.CellFormat(0, 9, r.Cost.Total, "T", 1, "", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Dicetak pada", "", 0, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(r.Company.Name), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, utils.FormatDateLong(r.PrintedAt), "", 0, "", false, 0, "")
	pdf.Ln(20)
	pdf.CellFormat(0, 6, "Tanda Tangan", "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ReceiptFilename(bk), nil
}

// GenerateReport renders the summary and both rollups of rep.
func (s DocsService) GenerateReport(rep Report) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_report", fmt.Sprintf("rows=%d", len(rep.Bookings)))

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Laporan Booking", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(s.Company.Name+" - Laporan Booking"), "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(describeFilter(rep.Filter)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, "Dicetak pada "+utils.FormatDateLong(s.now()), "", 1, "", false, 0, "")
	pdf.Ln(3)

	sum := rep.Summary
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Booking: %d   Total Pendapatan: %s", sum.TotalBookings, utils.FormatRupiah(sum.TotalRevenue)), "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Confirmed: %d (%s)   Pending: %d (%s)   Cancelled: %d (%s)",
		sum.ConfirmedBookings, sum.ConfirmedPercent(),
		sum.PendingBookings, sum.PendingPercent(),
		sum.CancelledBookings, sum.CancelledPercent()), "", 1, "", false, 0, "")
	pdf.Ln(3)

	widths := []float64{70, 30, 50, 40, 30, 30, 27}
	header := []string{"", "Booking", "Pendapatan", "Rata-rata", "Confirmed", "Pending", "Cancelled"}
	table := func(title, first string, rows [][]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range header {
			if i == 0 {
				h = first
			}
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, r := range rows {
			for i, v := range r {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	pkgRows := make([][]string, 0, len(rep.Packages))
	for _, p := range rep.Packages {
		pkgRows = append(pkgRows, groupRow(p.Destination, p.GroupReport))
	}
	table("Laporan per Paket", "Destinasi", pkgRows)

	dateRows := make([][]string, 0, len(rep.Dates))
	for _, d := range rep.Dates {
		dateRows = append(dateRows, groupRow(d.Label, d.GroupReport))
	}
	table("Laporan per Tanggal", "Tanggal", dateRows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ExportFilename("laporan-booking", "pdf", s.now()), nil
}

func groupRow(label string, g GroupReport) []string {
	return []string{
		label,
		fmt.Sprintf("%d", g.TotalBookings),
		utils.FormatRupiah(g.TotalRevenue),
		utils.FormatRupiah(g.AverageRevenue()),
		fmt.Sprintf("%d", g.ConfirmedBookings),
		fmt.Sprintf("%d", g.PendingBookings),
		fmt.Sprintf("%d", g.CancelledBookings),
	}
}

func describeFilter(f ReportFilter) string {
	start, end := "awal", "akhir"
	if !f.StartDate.IsZero() {
		start = utils.FormatDateLong(f.StartDate.Time)
	}
	if !f.EndDate.IsZero() {
		end = utils.FormatDateLong(f.EndDate.Time)
	}
	dest := "Semua destinasi"
	if active(f.Destination) {
		dest = f.Destination
	}
	status := "semua status"
	if active(f.Status) {
		status = f.Status
	}
	return fmt.Sprintf("Periode %s s/d %s | %s | %s", start, end, dest, status)
}
