package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "altura-admin/internal/config"
	intdb "altura-admin/internal/db"
)

// ExportLog is one row of the export history.
type ExportLog struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	Rows        int       `json:"rows"`
	RequestedBy string    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportLogRepository stores export history in MySQL. With no DB configured
// every method is a no-op.
type ExportLogRepository struct {
	DB *sql.DB
}

func (r ExportLogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ExportLogRepository) table() string {
	return "export_logs"
}

// Enabled reports whether a database is wired in.
func (r ExportLogRepository) Enabled() bool {
	return r.db() != nil
}

func (r ExportLogRepository) ensureTable(ctx context.Context, db *sql.DB) error {
	if intdb.HasTable(ctx, db, r.table()) {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS export_logs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	kind VARCHAR(50) NOT NULL,
	format VARCHAR(10) NOT NULL,
	filename VARCHAR(255) NOT NULL,
	row_count INT NOT NULL DEFAULT 0,
	requested_by VARCHAR(255) NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// Insert records a finished export and returns its id.
func (r ExportLogRepository) Insert(ctx context.Context, rec ExportLog) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, nil
	}
	if strings.TrimSpace(rec.Kind) == "" || strings.TrimSpace(rec.Format) == "" {
		return 0, fmt.Errorf("kind dan format wajib diisi")
	}
	if err := r.ensureTable(ctx, db); err != nil {
		return 0, fmt.Errorf("ensure export_logs: %w", err)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO export_logs (kind, format, filename, row_count, requested_by, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, rec.Kind, rec.Format, rec.Filename, rec.Rows, intdb.NullIfEmpty(rec.RequestedBy))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRecent returns the newest exports first.
func (r ExportLogRepository) ListRecent(ctx context.Context, limit int) ([]ExportLog, error) {
	out := []ExportLog{}
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, r.table()) {
		return out, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, format, filename, row_count, COALESCE(requested_by, ''), created_at
		FROM export_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec ExportLog
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Format, &rec.Filename, &rec.Rows, &rec.RequestedBy, &rec.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
