package razorpayrepo

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"borrowbox/util/httpx"
)

const ordersURL = "https://api.razorpay.com/v1/orders"

type httpRepo struct {
	keyID         string
	keySecret     string
	webhookSecret string
	client        *http.Client
}

func NewHTTP(keyID, keySecret, webhookSecret string) Repo {
	return &httpRepo{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		client:        httpx.Client(),
	}
}

func (r *httpRepo) CreateOrder(req CreateOrderReq) (*CreateOrderResp, error) {
	body := map[string]any{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}
	if len(req.Notes) > 0 {
		body["notes"] = req.Notes
	}
	b, _ := json.Marshal(body)
	httpReq, _ := http.NewRequest("POST", ordersURL, bytes.NewReader(b))
	httpReq.SetBasicAuth(r.keyID, r.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("razorpay create order failed: %s", resp.Status)
	}

	var out struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("razorpay: empty order id")
	}

	return &CreateOrderResp{OrderID: out.ID, Amount: out.Amount, Currency: out.Currency}, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header: hex HMAC
// SHA-256 of the raw body under the webhook secret.
func (r *httpRepo) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	if sigHeader == "" {
		return errors.New("missing signature header")
	}
	mac := hmac.New(sha256.New, []byte(r.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sigHeader)) {
		return errors.New("webhook signature mismatch")
	}
	return nil
}

// VerifyPaymentSignature checks the checkout callback signature: hex HMAC
// SHA-256 of "<order_id>|<payment_id>" under the key secret.
func (r *httpRepo) VerifyPaymentSignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("payment signature mismatch")
	}
	return nil
}
