package domain

import (
	"strings"
	"time"
)

// Booking status literals as the booking API writes them.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "COMPLETED"
)

// FilterAll disables a destination or status filter.
const FilterAll = "all"

// NormalizeStatus maps case variants ("pending", "Pending", ...) onto the
// canonical literal. Unknown values are returned trimmed but otherwise as-is.
func NormalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "pending":
		return StatusPending
	case "confirmed":
		return StatusConfirmed
	case "cancelled", "canceled":
		return StatusCancelled
	case "completed":
		return StatusCompleted
	}
	return s
}

// IsAdminSettable reports whether an admin may move a booking to status s.
func IsAdminSettable(s string) bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Session is the authenticated handle passed explicitly into every backend call.
type Session struct {
	Token string `json:"-"`

	// Claims read from the token payload (unverified, display only).
	UserID    string    `json:"userId,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Require returns an UnauthenticatedError when the session has no token.
func (s Session) Require() error {
	if !s.Authenticated() {
		return UnauthenticatedError{Reason: "Token tidak ditemukan", Err: ErrMissingToken}
	}
	return nil
}
