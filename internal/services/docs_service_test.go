package services

import (
	"bytes"
	"testing"

	"altura-admin/internal/config"
	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
)

func testCompany() config.Company {
	return config.Company{Name: "ALTURA TRAVEL", Address: "Jl. Contoh No. 123", Contact: "info@altura.com"}
}

func TestDocsServiceGenerateReceipt(t *testing.T) {
	svc := DocsService{Company: testCompany(), Now: fixedNow}
	b := models.Booking{
		ID:            42,
		Fullname:      "Siti Nurhaliza",
		Destination:   "Bali",
		BookingDate:   models.MustDate("2024-01-05"),
		DepartureDate: models.MustDate("2024-02-10"),
		HargaAsli:     2000000,
		HargaDiskon:   250000,
		TotalPrice:    1750000,
		Status:        domain.StatusConfirmed,
	}

	pdf, filename, err := svc.GenerateReceipt(b)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("GenerateReceipt did not return a PDF")
	}
	if filename != "receipt-42-siti-nurhaliza.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceBuildReceipt(t *testing.T) {
	svc := DocsService{Company: testCompany(), Now: fixedNow}
	r := svc.BuildReceipt(models.Booking{ID: 7, HargaAsli: 1000000, HargaDiskon: 1500000})
	if r.Cost.Total != "Rp 1.000.000" || r.Cost.HasDiscount {
		t.Fatalf("unexpected cost %+v", r.Cost)
	}
	if r.Reference != "ALT-000007" {
		t.Fatalf("unexpected reference %q", r.Reference)
	}
	if !r.PrintedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected print time %v", r.PrintedAt)
	}
	if ReceiptFilename(models.Booking{ID: 7}) != "receipt-7.pdf" {
		t.Fatalf("unexpected filename for unnamed booking")
	}
}

func TestDocsServiceGenerateReport(t *testing.T) {
	rep := ReportsService{}.Build(baliBookings(), ReportFilter{})
	pdf, filename, err := DocsService{Company: testCompany(), Now: fixedNow}.GenerateReport(rep)
	if err != nil {
		t.Fatalf("GenerateReport returned error: %v", err)
	}
	if len(pdf) == 0 || filename != "laporan-booking-2024-01-31.pdf" {
		t.Fatalf("GenerateReport returned %d bytes, filename %q", len(pdf), filename)
	}
}
