package bitcart

import "time"

// RetryPolicy bounds the best-effort follow-up polls after invoice creation.
// Exhausting it is not an error, the invoice is simply returned without an
// address. Tests inject a zero-delay policy.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

var DefaultAddressPolicy = RetryPolicy{MaxAttempts: 5, Delay: 400 * time.Millisecond}
