// Package views holds the server-rendered admin pages.
package views

import (
	"embed"
	"html/template"
	"time"

	"altura-admin/internal/domain/models"
	"altura-admin/internal/services"
	"altura-admin/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

// Funcs is the helper set available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"rupiah":    utils.FormatRupiah,
		"number":    utils.FormatNumber,
		"price":     services.PriceDisplay,
		"receipt":   services.ReceiptTotal,
		"proofs":    services.ProofImages,
		"badge":     services.StatusBadgeClass,
		"canChange": services.CanChangeStatus,
		"dateLong": func(d models.Date) string {
			return utils.FormatDateLong(d.Time)
		},
		"dateShort": func(d models.Date) string {
			return utils.FormatDateShort(d.Time)
		},
		"timeLong": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return utils.FormatDateLong(t) + " " + t.In(time.Local).Format("15:04")
		},
		"selected": func(a, b string) bool { return a == b },
		"noProof":  func() string { return services.NoProofLabel },
	}
}

// Load parses every embedded page.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}
