package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExportLogInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("export_logs").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("export_logs"))
	mock.ExpectExec("INSERT INTO export_logs").
		WithArgs("bookings", "csv", "bookings-2024-01-31.csv", 3, "Admin").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := ExportLogRepository{DB: db}
	id, err := repo.Insert(context.Background(), ExportLog{
		Kind: "bookings", Format: "csv", Filename: "bookings-2024-01-31.csv", Rows: 3, RequestedBy: "Admin",
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExportLogInsertCreatesTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("export_logs").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS export_logs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO export_logs").
		WithArgs("report", "pdf", "laporan.pdf", 2, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := ExportLogRepository{DB: db}
	if _, err := repo.Insert(context.Background(), ExportLog{Kind: "report", Format: "pdf", Filename: "laporan.pdf", Rows: 2}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExportLogInsertValidates(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	if _, err := (ExportLogRepository{DB: db}).Insert(context.Background(), ExportLog{Format: "csv"}); err == nil {
		t.Fatalf("expected error for missing kind")
	}
}

func TestExportLogListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("information_schema.tables").
		WithArgs("export_logs").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("export_logs"))
	mock.ExpectQuery("FROM export_logs").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "format", "filename", "row_count", "requested_by", "created_at"}).
			AddRow(2, "packages", "csv", "packages-2024-01-31.csv", 4, "", at).
			AddRow(1, "bookings", "xlsx", "laporan-booking-2024-01-31.xlsx", 9, "Admin", at))

	logs, err := ExportLogRepository{DB: db}.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(logs) != 2 || logs[0].Kind != "packages" || logs[1].RequestedBy != "Admin" {
		t.Fatalf("unexpected logs %+v", logs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExportLogWithoutDB(t *testing.T) {
	repo := ExportLogRepository{}
	if repo.Enabled() {
		t.Skip("a global DB is configured")
	}
	if id, err := repo.Insert(context.Background(), ExportLog{Kind: "x", Format: "csv"}); err != nil || id != 0 {
		t.Fatalf("expected no-op insert, got %d %v", id, err)
	}
	logs, err := repo.ListRecent(context.Background(), 10)
	if err != nil || len(logs) != 0 {
		t.Fatalf("expected empty history, got %v %v", logs, err)
	}
}
