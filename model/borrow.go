// model/borrow.go
package model

import "time"

type BorrowStatus string

const (
	BorrowPendingPayment BorrowStatus = "PENDING_PAYMENT"
	BorrowActive         BorrowStatus = "ACTIVE"
	BorrowReturned       BorrowStatus = "RETURNED"
	BorrowCanceled       BorrowStatus = "CANCELED"
)

type BorrowRecord struct {
	ID             int64        `json:"id"`
	BorrowerID     int64        `json:"borrower_id"`
	BorrowerName   string       `json:"borrower_name"`
	ToolID         int64        `json:"tool_id"`
	ToolName       string       `json:"tool_name"`
	Days           int          `json:"days"`
	TotalCost      float64      `json:"total_cost"`
	Status         BorrowStatus `json:"status"`
	PaymentOrderID string       `json:"payment_order_id,omitempty"`
	PaymentID      *string      `json:"payment_id,omitempty"`
	ReturnToken    string       `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	PaidAt         *time.Time   `json:"paid_at,omitempty"`
	ReturnedAt     *time.Time   `json:"returned_at,omitempty"`
	CanceledAt     *time.Time   `json:"canceled_at,omitempty"`
}

// BorrowReq starts the borrow flow for a tool. AgreeTerms is the explicit
// consent flag; the transition is refused without it.
// swagger:model BorrowReq
type BorrowReq struct {
	Days       int  `json:"days" validate:"required,gte=1"`
	AgreeTerms bool `json:"agree_terms"`
}

// ReturnReq carries the one-time token embedded in the return QR code.
// swagger:model ReturnReq
type ReturnReq struct {
	ReturnToken string `json:"return_token" validate:"required"`
}
