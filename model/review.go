// model/review.go
package model

import "time"

type Review struct {
	ID           int64     `json:"id"`
	BorrowID     int64     `json:"borrow_id"`
	ToolID       int64     `json:"tool_id"`
	ToolName     string    `json:"tool_name"`
	LenderID     int64     `json:"lender_id"`
	BorrowerID   int64     `json:"borrower_id"`
	ToolRating   int       `json:"tool_rating"`
	LenderRating int       `json:"lender_rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateReviewReq represents the post-return review payload
// swagger:model CreateReviewReq
type CreateReviewReq struct {
	BorrowID     int64  `json:"borrow_id" validate:"required,gt=0"`
	ToolRating   int    `json:"tool_rating" validate:"required,gte=1,lte=5"`
	LenderRating int    `json:"lender_rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment"`
}
