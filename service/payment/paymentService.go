// Package paymentsvc settles gateway webhooks. A captured payment is the
// trigger for the PENDING_PAYMENT to ACTIVE transition: the borrow record
// and its tool are updated together in one transaction, and replays of the
// same event settle to a no-op.
package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"borrowbox/model"
	razorpayrepo "borrowbox/repository/razorpay"
)

type Repo interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ByOrderID(ctx context.Context, orderID string) (*model.BorrowRecord, error)
	ForUpdate(ctx context.Context, id int64) (*model.BorrowRecord, error)
	MarkPaid(ctx context.Context, id int64, paymentID string) error
	MarkToolBorrowed(ctx context.Context, toolID int64, days int, total float64) error
}

type Service interface {
	HandleRazorpay(ctx context.Context, sigHeader string, raw []byte) error
}

type service struct {
	r  Repo
	gw razorpayrepo.Repo
}

func New(r Repo, gw razorpayrepo.Repo) Service { return &service{r: r, gw: gw} }

type paymentEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (s *service) HandleRazorpay(ctx context.Context, sigHeader string, raw []byte) error {
	if err := s.gw.VerifyWebhookSignature(sigHeader, raw); err != nil {
		return err
	}

	var ev paymentEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}

	switch ev.Event {
	case "payment.captured":
		pay := ev.Payload.Payment.Entity
		if pay.ID == "" || pay.OrderID == "" {
			return errors.New("missing payment fields")
		}
		return s.onCaptured(ctx, pay.OrderID, pay.ID)
	case "payment.failed":
		// The reservation stays pending; the borrower retries or cancels.
		return nil
	default:
		return nil
	}
}

func (s *service) onCaptured(ctx context.Context, orderID, paymentID string) error {
	b, err := s.r.ByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("order %s not mapped to a borrow record", orderID)
	}

	return s.r.WithTx(ctx, func(txCtx context.Context) error {
		cur, err := s.r.ForUpdate(txCtx, b.ID)
		if err != nil {
			return err
		}
		if cur == nil {
			return fmt.Errorf("borrow %d vanished", b.ID)
		}

		switch cur.Status {
		case model.BorrowActive, model.BorrowReturned:
			// Replayed webhook; already settled.
			return nil
		case model.BorrowCanceled:
			return fmt.Errorf("payment %s captured for canceled borrow %d", paymentID, cur.ID)
		}

		if err := s.r.MarkPaid(txCtx, cur.ID, paymentID); err != nil {
			return err
		}
		return s.r.MarkToolBorrowed(txCtx, cur.ToolID, cur.Days, cur.TotalCost)
	})
}
