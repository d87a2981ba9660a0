package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ResponseDepositInfo is the normalized invoice descriptor returned to the
// storefront and carried in webhook notifications.
type ResponseDepositInfo struct {
	Id        string         `json:"id"`
	Price     string         `json:"price"`
	Currency  string         `json:"currency"`
	Status    string         `json:"status"`
	Address   string         `json:"address"`
	PayUrl    string         `json:"payUrl"`
	Network   string         `json:"network,omitempty"`
	ExpiresAt string         `json:"expiresAt"`
	Raw       map[string]any `json:"raw,omitempty"`
}

const (
	ErrMsgRateLimitExceeded   = "rate limit exceeded"
	ErrMsgInternalServerError = "internal server error"
	ErrMsgBadRequest          = "bad request"
	ErrMsgParamsBadRequest    = "bad request: %s"

	ErrMsgInvalidInvoiceId = "invalid invoice id"
	ErrMsgInvalidAmount    = "price must be a positive number"
	ErrMsgInvalidAddress   = "invalid withdrawal address"

	ErrMsgApiUrlNotConfigured  = "upstream api url is not configured"
	ErrMsgTokenNotConfigured   = "upstream token is not configured"
	ErrMsgStoreIdNotConfigured = "store id is not configured"
)

var (
	ErrInvalidAmount     = fmt.Errorf(ErrMsgInvalidAmount)
	ErrInvalidAddress    = fmt.Errorf(ErrMsgInvalidAddress)
	ErrInvalidInvoiceId  = fmt.Errorf(ErrMsgInvalidInvoiceId)
	ErrInvoiceIdNotFound = fmt.Errorf("invoice id not found")
	ErrAccountNotFound   = fmt.Errorf("account not found")

	ErrInternalServerError = fmt.Errorf(ErrMsgInternalServerError)
	ErrNotConfigured       = fmt.Errorf("gateway is not configured")
)

const (
	ErrParamEmptyInvoiceId = "invoice id is empty"
)

// UpstreamError carries the processor's status code and body verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream error: status %d", e.StatusCode)
	}
	return e.Body
}

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return 200
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if upstream.StatusCode == 0 {
			return http.StatusBadRequest
		}
		return upstream.StatusCode
	}

	switch {
	case errors.Is(err, ErrInternalServerError):
		status = http.StatusInternalServerError
	case errors.Is(err, ErrNotConfigured):
		status = http.StatusInternalServerError
	case errors.Is(err, ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvalidAddress):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvalidInvoiceId):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvoiceIdNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, ErrAccountNotFound):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	return status
}
