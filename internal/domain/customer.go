package domain

import (
	"math"    // Special values
	"strconv" // Number formatting
	"strings" // Exponent trimming
	"time"    // Timestamps
)

// Customer Model
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Name      string    `gorm:"size:255;not null" json:"name"` // Customer name
	Status    bool      `gorm:"not null" json:"status"`        // Paid (true) or unpaid (false)
	Price     float64   `gorm:"not null" json:"price"`         // Bill price
	CreatedAt time.Time `json:"-"`                             // Creation timestamp
	UpdatedAt time.Time `json:"-"`                             // Last update timestamp
}

// CustomerView is the display shape of a customer record
type CustomerView struct {
	ID        uint   `json:"id"`        // Customer ID
	Name      string `json:"name"`      // Customer name
	Status    string `json:"status"`    // "Paid" or "Unpaid"
	BillPrice string `json:"billPrice"` // Currency-prefixed price
}

// StatusLabel returns the display label for the paid flag
func StatusLabel(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Unpaid"
}

// FormatPrice renders a price with the given currency prefix, formatting the number the way JavaScript's Number#toString does
func FormatPrice(currency string, price float64) string {
	return currency + formatNumber(price)
}

// formatNumber produces the shortest round-trip form, switching to exponent notation outside [1e-6, 1e21)
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // Negative zero prints as 0
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64) // e.g. 1.5e-07
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits // e.g. 1.5e-7
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View converts the record into its display shape
func (c Customer) View(currency string) CustomerView {
	return CustomerView{
		ID:        c.ID,
		Name:      c.Name,
		Status:    StatusLabel(c.Status),
		BillPrice: FormatPrice(currency, c.Price),
	}
}
