package domain

import "time"

// ToastKind selects the styling of a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// IsValid reports whether k is a known kind.
func (k ToastKind) IsValid() bool {
	return k == ToastSuccess || k == ToastError
}

// Toast is a transient user-facing message.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
