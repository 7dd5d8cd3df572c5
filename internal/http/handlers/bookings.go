package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/http/middleware"
	"altura-admin/internal/metrics"
	"altura-admin/internal/notify"
	"altura-admin/internal/repositories"
	"altura-admin/internal/services"
	"altura-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// BookingsPage is the data of the booking list page.
type BookingsPage struct {
	Page
	Report services.Report
	Query  template.URL
}

// filterQuery re-encodes the active filter for export and print links.
func filterQuery(f services.ReportFilter) template.URL {
	q := url.Values{}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.String())
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.String())
	}
	if f.Destination != "" {
		q.Set("destination", f.Destination)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return template.URL(q.Encode())
}

// loadBoard binds the filter from the query and fetches the collection.
// Problems become notifications; the board is always usable.
func loadBoard(c *gin.Context) (*services.BookingBoard, []notify.Notification) {
	var extra []notify.Notification
	f, err := services.ParseReportFilter(c.Query("start_date"), c.Query("end_date"), c.Query("destination"), c.Query("status"))
	if err != nil {
		extra = append(extra, notify.Error(err.Error()))
		f = services.ReportFilter{}
	}
	board := services.NewBookingBoard(bookingService(c), middleware.GetSession(c), f)
	_ = board.Refresh(c.Request.Context())
	return board, append(extra, board.Notifications...)
}

// ListBookingsPage renders the filtered booking table with its summary.
func ListBookingsPage(c *gin.Context) {
	board, extra := loadBoard(c)
	c.HTML(http.StatusOK, "bookings.html", BookingsPage{
		Page:   newPage(c, "Booking", extra...),
		Report: board.Report(),
		Query:  filterQuery(board.Filter),
	})
}

// ChangeBookingStatusForm handles the Konfirmasi / Batalkan buttons.
func ChangeBookingStatusForm(c *gin.Context) {
	target := "/admin/bookings"
	if ret := strings.TrimSpace(c.PostForm("return")); ret != "" {
		if q, err := url.ParseQuery(ret); err == nil {
			target += "?" + q.Encode()
		}
	}

	status := strings.TrimSpace(c.PostForm("status"))
	id, err := repositories.ParseBookingID(c.Param("id"))
	if err != nil {
		flashAndRedirect(c, target, notify.Error(services.StatusErrorMessage(err, status)))
		return
	}

	board := services.NewBookingBoard(bookingService(c), middleware.GetSession(c), services.ReportFilter{})
	_ = board.ChangeStatus(c.Request.Context(), id, status)
	flashAndRedirect(c, target, board.Notifications...)
}

// ReceiptPage is the data of the receipt print layout.
type ReceiptPage struct {
	Page
	Receipt services.Receipt
}

func loadBooking(c *gin.Context) (models.Booking, bool) {
	id, err := repositories.ParseBookingID(c.Param("id"))
	if err != nil {
		flashAndRedirect(c, "/admin/bookings", notify.Error(err.Error()))
		return models.Booking{}, false
	}
	b, err := bookingService(c).Get(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		msg := services.FetchErrorMessage(err)
		if domain.IsNotFound(err) {
			msg = "Data booking tidak ditemukan"
		}
		flashAndRedirect(c, "/admin/bookings", notify.Error(msg))
		return models.Booking{}, false
	}
	return b, true
}

// PrintReceipt renders the standalone receipt page that opens the print dialog.
func PrintReceipt(c *gin.Context) {
	b, ok := loadBooking(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "receipt_print.html", ReceiptPage{
		Page:    Page{Title: "Receipt #" + c.Param("id"), Session: middleware.GetSession(c)},
		Receipt: docsService(c).BuildReceipt(b),
	})
}

// DownloadReceiptPDF returns the receipt as a PDF attachment.
func DownloadReceiptPDF(c *gin.Context) {
	b, ok := loadBooking(c)
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateReceipt(b)
	if err != nil {
		flashAndRedirect(c, "/admin/bookings", notify.Error("Gagal membuat PDF receipt"))
		return
	}
	exportService(c).Record(c.Request.Context(), "receipt", "pdf", filename, 1)
	sendFile(c, "application/pdf", filename, pdf)
}

// ListBookingsJSON returns the filtered list, summary and rollups.
func ListBookingsJSON(c *gin.Context) {
	f, err := services.ParseReportFilter(c.Query("start_date"), c.Query("end_date"), c.Query("destination"), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	board := services.NewBookingBoard(bookingService(c), middleware.GetSession(c), f)
	if err := board.Refresh(c.Request.Context()); err != nil {
		status, code := classify(err)
		respondError(c, status, code, services.FetchErrorMessage(err), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": board.Report()})
}

// GetBookingJSON returns one booking with its display values.
func GetBookingJSON(c *gin.Context) {
	id, err := repositories.ParseBookingID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := bookingService(c).Get(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"booking": b,
			"price":   services.PriceDisplay(b),
			"receipt": services.ReceiptTotal(b),
			"proofs":  services.ProofImages(b.Attachments),
		},
	})
}

// UpdateBookingStatusJSON changes a status and returns the refreshed list.
func UpdateBookingStatusJSON(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	id, err := repositories.ParseBookingID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	board := services.NewBookingBoard(bookingService(c), middleware.GetSession(c), services.ReportFilter{})
	err = board.ChangeStatus(c.Request.Context(), id, status)
	updated := len(board.Notifications) > 0 && board.Notifications[0].Level == notify.LevelSuccess
	if err != nil && !updated {
		code, name := classify(err)
		last := board.Notifications[len(board.Notifications)-1]
		respondError(c, code, name, last.Message, gin.H{"notifications": board.Notifications})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"notifications": board.Notifications,
		"data":          board.Report(),
	})
}

// sendFile writes a download and counts aborted writes.
func sendFile(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(data); err != nil {
		metrics.DownloadWriteErrors.Inc()
		utils.LogError(middleware.GetRequestID(c), "download", filename, err)
	}
}
