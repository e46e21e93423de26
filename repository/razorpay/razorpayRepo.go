package razorpayrepo

// CreateOrderReq asks the gateway for a checkout order. Amount is in the
// currency's minor units (paise for INR).
type CreateOrderReq struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type CreateOrderResp struct {
	OrderID  string
	Amount   int64
	Currency string
}

type Repo interface {
	CreateOrder(req CreateOrderReq) (*CreateOrderResp, error)
	VerifyWebhookSignature(sigHeader string, rawBody []byte) error
	VerifyPaymentSignature(orderID, paymentID, signature string) error
}
