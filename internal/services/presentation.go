package services

import (
	"regexp"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/utils"
)

const NoProofLabel = "Tidak ada bukti"

// PriceView is the table cell for a booking price.
type PriceView struct {
	Discounted bool
	Original   string
	Discount   string
	Total      string
}

// PriceDisplay shows a single price unless the booking was sold below its
// original price. A total above the original price is inconsistent data and
// shows the original price.
func PriceDisplay(b models.Booking) PriceView {
	switch {
	case b.HargaAsli <= 0 || b.TotalPrice == b.HargaAsli:
		return PriceView{Total: utils.FormatRupiah(b.TotalPrice)}
	case b.TotalPrice > b.HargaAsli:
		return PriceView{Total: utils.FormatRupiah(b.HargaAsli)}
	}
	return PriceView{
		Discounted: true,
		Original:   utils.FormatRupiah(b.HargaAsli),
		Discount:   "-" + utils.FormatRupiah(b.HargaAsli-b.TotalPrice),
		Total:      utils.FormatRupiah(b.TotalPrice),
	}
}

// ReceiptCost is the "Rincian Biaya" block of a receipt.
type ReceiptCost struct {
	Original    string
	Discount    string // empty when no discount applies
	Total       string
	TotalAmount int64
	HasDiscount bool
	OriginalSet bool
}

// ReceiptTotal computes the payable amount. The discount counts only when
// 0 < diskon < asli, so the total is never negative; a missing original
// price renders "-".
func ReceiptTotal(b models.Booking) ReceiptCost {
	if b.HargaAsli <= 0 {
		return ReceiptCost{Original: "-", Total: "-"}
	}
	out := ReceiptCost{
		Original:    utils.FormatRupiah(b.HargaAsli),
		TotalAmount: b.HargaAsli,
		OriginalSet: true,
	}
	if b.HargaDiskon > 0 && b.HargaDiskon < b.HargaAsli {
		out.HasDiscount = true
		out.Discount = "-" + utils.FormatRupiah(b.HargaDiskon)
		out.TotalAmount = b.HargaAsli - b.HargaDiskon
	}
	out.Total = utils.FormatRupiah(out.TotalAmount)
	return out
}

var proofImage = regexp.MustCompile(`(?i)\.(jpg|jpeg)$`)

// ProofImages returns the attachments that render as thumbnails, in order.
func ProofImages(a models.Attachments) []string {
	out := []string{}
	for _, u := range a {
		if proofImage.MatchString(u) {
			out = append(out, u)
		}
	}
	return out
}

var badgeClass = map[string]string{
	"pending":              "badge-pending",
	"Pending":              "badge-pending",
	domain.StatusPending:   "badge-pending",
	domain.StatusConfirmed: "badge-confirmed",
	domain.StatusCancelled: "badge-cancelled",
	domain.StatusCompleted: "badge-completed",
}

// StatusBadgeClass maps a status literal to its badge colour class.
func StatusBadgeClass(status string) string {
	if c, ok := badgeClass[status]; ok {
		return c
	}
	return "badge-unknown"
}

// CanChangeStatus reports whether the row offers Confirm / Cancel actions.
func CanChangeStatus(b models.Booking) bool {
	return b.Status == domain.StatusPending
}
