package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"altura-admin/internal/config"
	"altura-admin/internal/domain"
	"altura-admin/internal/http/middleware"
	"altura-admin/internal/notify"
	"altura-admin/internal/repositories"
	"altura-admin/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportsPage renders the summary with the package and date rollups.
func ReportsPage(c *gin.Context) {
	board, extra := loadBoard(c)
	c.HTML(http.StatusOK, "reports.html", BookingsPage{
		Page:   newPage(c, "Laporan", extra...),
		Report: board.Report(),
		Query:  filterQuery(board.Filter),
	})
}

// ReportPrintPage is the data of the report print layout.
type ReportPrintPage struct {
	Page
	Report    services.Report
	Company   config.Company
	PrintedAt time.Time
}

// PrintReport renders the standalone report page that opens the print dialog.
func PrintReport(c *gin.Context) {
	board, extra := loadBoard(c)
	if !board.Loaded {
		flashAndRedirect(c, backTo(c, board.Filter), extra...)
		return
	}
	d := current()
	c.HTML(http.StatusOK, "report_print.html", ReportPrintPage{
		Page:      Page{Title: "Print Laporan", Session: middleware.GetSession(c)},
		Report:    board.Report(),
		Company:   d.Company,
		PrintedAt: d.Now(),
	})
}

// backTo is the page an export failure returns to: the referring admin page
// when there is one, else the report page with the same filter.
func backTo(c *gin.Context, f services.ReportFilter) string {
	if ref, err := url.Parse(c.GetHeader("Referer")); err == nil && strings.HasPrefix(ref.Path, "/admin/") {
		if ref.RawQuery == "" {
			return ref.Path
		}
		return ref.Path + "?" + ref.RawQuery
	}
	if q := string(filterQuery(f)); q != "" {
		return "/admin/reports?" + q
	}
	return "/admin/reports"
}

// exportBoard loads the report for an export or redirects with the reason.
func exportBoard(c *gin.Context) (*services.BookingBoard, bool) {
	board, extra := loadBoard(c)
	if !board.Loaded {
		flashAndRedirect(c, backTo(c, board.Filter), extra...)
		return nil, false
	}
	return board, true
}

func exportFailed(c *gin.Context, board *services.BookingBoard, err error) {
	msg := "Gagal membuat file export"
	switch {
	case domain.IsEmptyPayload(err):
		msg = services.MsgNothingToExp
	case domain.IsValidation(err):
		msg = err.Error()
	}
	flashAndRedirect(c, backTo(c, board.Filter), notify.Error(msg))
}

// ExportCSV downloads one report kind (bookings, packages, dates) as CSV.
func ExportCSV(c *gin.Context) {
	board, ok := exportBoard(c)
	if !ok {
		return
	}
	data, filename, err := exportService(c).CSV(c.Request.Context(), c.DefaultQuery("kind", services.KindBookings), board.Report())
	if err != nil {
		exportFailed(c, board, err)
		return
	}
	sendFile(c, "text/csv; charset=utf-8", filename, data)
}

// ExportXLSX downloads the whole report as a workbook.
func ExportXLSX(c *gin.Context) {
	board, ok := exportBoard(c)
	if !ok {
		return
	}
	data, filename, err := exportService(c).XLSX(c.Request.Context(), board.Report())
	if err != nil {
		exportFailed(c, board, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

// ExportPDF downloads the report summary and rollups as PDF.
func ExportPDF(c *gin.Context) {
	board, ok := exportBoard(c)
	if !ok {
		return
	}
	rep := board.Report()
	if len(rep.Bookings) == 0 {
		exportFailed(c, board, domain.EmptyPayloadError{Resource: "export"})
		return
	}
	data, filename, err := docsService(c).GenerateReport(rep)
	if err != nil {
		exportFailed(c, board, err)
		return
	}
	exportService(c).Record(c.Request.Context(), "report", "pdf", filename, len(rep.Bookings))
	sendFile(c, "application/pdf", filename, data)
}

// ExportsPage is the data of the export history page.
type ExportsPage struct {
	Page
	Enabled bool
	Logs    []repositories.ExportLog
}

// ExportHistory lists recent exports.
func ExportHistory(c *gin.Context) {
	svc := exportService(c)
	var extra []notify.Notification
	logs, err := svc.History(c.Request.Context(), 100)
	if err != nil {
		extra = append(extra, notify.Error("Gagal memuat riwayat export"))
		logs = []repositories.ExportLog{}
	}
	c.HTML(http.StatusOK, "exports.html", ExportsPage{
		Page:    newPage(c, "Riwayat Export", extra...),
		Enabled: svc.Logs.Enabled(),
		Logs:    logs,
	})
}
