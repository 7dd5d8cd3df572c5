package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatNumber groups digits the Indonesian way (1.500.000).
func FormatNumber(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// FormatRupiah renders a whole-rupiah amount without fraction digits.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "Rp " + FormatNumber(amount)
}
