// Package borrowsvc is the borrow lifecycle manager. It moves a tool and its
// borrow record through PENDING_PAYMENT, ACTIVE, RETURNED (or CANCELED),
// keeping the paired writes on both rows inside one transaction and gating
// each transition on authorization, consent, and payment confirmation.
package borrowsvc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"borrowbox/model"
	borrowrepo "borrowbox/repository/borrow"
	razorpayrepo "borrowbox/repository/razorpay"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidDays     ErrCode = "INVALID_DAYS"
	ErrInvalidPrice    ErrCode = "INVALID_PRICE"
	ErrConsentRequired ErrCode = "CONSENT_REQUIRED"
	ErrToolNotFound    ErrCode = "TOOL_NOT_FOUND"
	ErrOwnTool         ErrCode = "OWN_TOOL"
	ErrNotAvailable    ErrCode = "NOT_AVAILABLE"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrNotBorrower     ErrCode = "NOT_BORROWER"
	ErrNotActive       ErrCode = "NOT_ACTIVE"
	ErrNotPending      ErrCode = "NOT_PENDING"
	ErrBadReturnToken  ErrCode = "BAD_RETURN_TOKEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type Created struct {
	BorrowID    int64
	OrderID     string
	AmountMinor int64
	Currency    string
	TotalCost   float64
}

type Repo interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	ReserveTool(ctx context.Context, toolID int64) error
	ReleaseTool(ctx context.Context, toolID int64) error
	FreeTool(ctx context.Context, toolID int64) error

	Insert(ctx context.Context, b *model.BorrowRecord) error
	ByID(ctx context.Context, id int64) (*model.BorrowRecord, error)
	ForUpdate(ctx context.Context, id int64) (*model.BorrowRecord, error)
	MarkReturned(ctx context.Context, id int64) error
	MarkCanceled(ctx context.Context, id int64) error

	ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BorrowRecord, error)
}

type ToolReader interface {
	ByID(ctx context.Context, id int64) (*model.Tool, error)
}

type Service interface {
	// Initiate reserves the tool and opens a payment order. The record stays
	// PENDING_PAYMENT until the gateway confirms.
	Initiate(ctx context.Context, sess model.Session, toolID int64, days int, agreeTerms bool) (*Created, error)

	// Cancel releases a reservation whose payment was dismissed or abandoned.
	Cancel(ctx context.Context, sess model.Session, borrowID int64) error

	// Return marks an active borrow returned and frees the tool. Requires the
	// one-time token from the QR code. A second call is a no-op.
	Return(ctx context.Context, sess model.Session, borrowID int64, token string) error

	// ReturnQR renders the verification URL for an active borrow as a PNG.
	ReturnQR(ctx context.Context, sess model.Session, borrowID int64) ([]byte, error)

	MyHistory(ctx context.Context, sess model.Session) ([]model.BorrowRecord, error)
}

type service struct {
	r        Repo
	tools    ToolReader
	gw       razorpayrepo.Repo
	currency string
	baseURL  string
}

func New(r Repo, tools ToolReader, gw razorpayrepo.Repo, currency, baseURL string) Service {
	return &service{r: r, tools: tools, gw: gw, currency: currency, baseURL: baseURL}
}

func (s *service) Initiate(ctx context.Context, sess model.Session, toolID int64, days int, agreeTerms bool) (*Created, error) {
	if days < 1 {
		return nil, makeErr(ErrInvalidDays)
	}
	if !agreeTerms {
		return nil, makeErr(ErrConsentRequired)
	}

	tool, err := s.tools.ByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, makeErr(ErrToolNotFound)
	}
	if tool.OwnerID == sess.UserID {
		return nil, makeErr(ErrOwnTool)
	}
	if !tool.Available || tool.Borrowed {
		return nil, makeErr(ErrNotAvailable)
	}

	total, err := ComputeTotal(days, tool.PricePerDay)
	if err != nil {
		return nil, err
	}
	amountMinor := int64(math.Round(total * 100))

	order, err := s.gw.CreateOrder(razorpayrepo.CreateOrderReq{
		Amount:   amountMinor,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("borrow:%d:%d", toolID, time.Now().UnixNano()),
		Notes: map[string]string{
			"tool_id": fmt.Sprintf("%d", toolID),
		},
	})
	if err != nil {
		return nil, err
	}

	rec := &model.BorrowRecord{
		BorrowerID:     sess.UserID,
		BorrowerName:   sess.DisplayName,
		ToolID:         tool.ID,
		ToolName:       tool.Name,
		Days:           days,
		TotalCost:      total,
		Status:         model.BorrowPendingPayment,
		PaymentOrderID: order.OrderID,
		ReturnToken:    uuid.NewString(),
	}

	err = s.r.WithTx(ctx, func(txCtx context.Context) error {
		// Conditional update: the losing side of a concurrent borrow gets
		// ErrNotAvailable here, not a second reservation.
		if err := s.r.ReserveTool(txCtx, tool.ID); err != nil {
			if errors.Is(err, borrowrepo.ErrNotAvailable) {
				return makeErr(ErrNotAvailable)
			}
			return err
		}
		return s.r.Insert(txCtx, rec)
	})
	if err != nil {
		return nil, err
	}

	return &Created{
		BorrowID:    rec.ID,
		OrderID:     order.OrderID,
		AmountMinor: amountMinor,
		Currency:    s.currency,
		TotalCost:   total,
	}, nil
}

func (s *service) Cancel(ctx context.Context, sess model.Session, borrowID int64) error {
	return s.r.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.r.ForUpdate(txCtx, borrowID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.BorrowerID != sess.UserID {
			return makeErr(ErrNotBorrower)
		}
		if b.Status == model.BorrowCanceled {
			return nil
		}
		if b.Status != model.BorrowPendingPayment {
			return makeErr(ErrNotPending)
		}

		if err := s.r.MarkCanceled(txCtx, b.ID); err != nil {
			return err
		}
		return s.r.ReleaseTool(txCtx, b.ToolID)
	})
}

func (s *service) Return(ctx context.Context, sess model.Session, borrowID int64, token string) error {
	return s.r.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.r.ForUpdate(txCtx, borrowID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.BorrowerID != sess.UserID {
			return makeErr(ErrNotBorrower)
		}
		if b.Status == model.BorrowReturned {
			// Confirming twice is fine; the record stays returned.
			return nil
		}
		if b.Status != model.BorrowActive {
			return makeErr(ErrNotActive)
		}
		if token == "" || token != b.ReturnToken {
			return makeErr(ErrBadReturnToken)
		}

		if err := s.r.MarkReturned(txCtx, b.ID); err != nil {
			return err
		}
		return s.r.FreeTool(txCtx, b.ToolID)
	})
}

func (s *service) ReturnQR(ctx context.Context, sess model.Session, borrowID int64) ([]byte, error) {
	b, err := s.r.ByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	if b.BorrowerID != sess.UserID {
		return nil, makeErr(ErrNotBorrower)
	}
	if b.Status != model.BorrowActive {
		return nil, makeErr(ErrNotActive)
	}

	url := fmt.Sprintf("%s/verify/%d?token=%s", s.baseURL, b.ID, b.ReturnToken)
	return qrcode.Encode(url, qrcode.Medium, 256)
}

func (s *service) MyHistory(ctx context.Context, sess model.Session) ([]model.BorrowRecord, error) {
	return s.r.ListByBorrower(ctx, sess.UserID)
}
