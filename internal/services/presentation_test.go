package services

import (
	"testing"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestPriceDisplaySinglePrice(t *testing.T) {
	v := PriceDisplay(models.Booking{TotalPrice: 1500000, HargaAsli: 1500000})
	assert.False(t, v.Discounted)
	assert.Equal(t, "Rp 1.500.000", v.Total)
	assert.Empty(t, v.Discount)
}

func TestPriceDisplayTotalAboveOriginal(t *testing.T) {
	v := PriceDisplay(models.Booking{TotalPrice: 1800000, HargaAsli: 1500000})
	assert.False(t, v.Discounted)
	assert.Equal(t, "Rp 1.500.000", v.Total)
	assert.Empty(t, v.Discount)

	v = PriceDisplay(models.Booking{TotalPrice: 750000})
	assert.False(t, v.Discounted)
	assert.Equal(t, "Rp 750.000", v.Total)
}

func TestPriceDisplayDiscounted(t *testing.T) {
	v := PriceDisplay(models.Booking{TotalPrice: 1200000, HargaAsli: 1500000})
	assert.True(t, v.Discounted)
	assert.Equal(t, "Rp 1.500.000", v.Original)
	assert.Equal(t, "-Rp 300.000", v.Discount)
	assert.Equal(t, "Rp 1.200.000", v.Total)
}

func TestReceiptTotal(t *testing.T) {
	cases := []struct {
		name     string
		asli     int64
		diskon   int64
		total    string
		discount bool
	}{
		{"applies", 2000000, 250000, "Rp 1.750.000", true},
		{"larger than price", 1000000, 1500000, "Rp 1.000.000", false},
		{"equal to price", 1000000, 1000000, "Rp 1.000.000", false},
		{"zero", 1000000, 0, "Rp 1.000.000", false},
		{"negative", 1000000, -5000, "Rp 1.000.000", false},
		{"no original", 0, 100, "-", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ReceiptTotal(models.Booking{HargaAsli: tc.asli, HargaDiskon: tc.diskon})
			assert.Equal(t, tc.total, c.Total)
			assert.Equal(t, tc.discount, c.HasDiscount)
			assert.GreaterOrEqual(t, c.TotalAmount, int64(0))
		})
	}
}

func TestProofImages(t *testing.T) {
	a := models.Attachments{"https://x/a.JPG", "https://x/b.png", "https://x/c.jpeg", "https://x/d.jpg?v=1"}
	assert.Equal(t, []string{"https://x/a.JPG", "https://x/c.jpeg"}, ProofImages(a))
	assert.Empty(t, ProofImages(nil))
}

func TestStatusBadgeClass(t *testing.T) {
	assert.Equal(t, "badge-pending", StatusBadgeClass("pending"))
	assert.Equal(t, "badge-confirmed", StatusBadgeClass(domain.StatusConfirmed))
	assert.Equal(t, "badge-unknown", StatusBadgeClass("refunded"))
	assert.True(t, CanChangeStatus(models.Booking{Status: domain.StatusPending}))
	assert.False(t, CanChangeStatus(models.Booking{Status: domain.StatusConfirmed}))
}
