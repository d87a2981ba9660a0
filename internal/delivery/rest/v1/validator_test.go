package v1

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateNetwork(t *testing.T) {
	v := validator.New()
	v.RegisterValidation("network", validateNetwork)
	v.RegisterValidation("webhook", validateWebhook)

	cases := []struct {
		data  NewDepositData
		valid bool
	}{
		{NewDepositData{Username: "alice", PriceFloat: 100}, true},
		{NewDepositData{Username: "alice", PriceFloat: 100, Network: "TRC20"}, true},
		{NewDepositData{Username: "alice", PriceFloat: 100, Network: "trc20"}, true},
		{NewDepositData{Username: "alice", PriceFloat: 100, Network: "BTC"}, false},
		{NewDepositData{Username: "alice", PriceFloat: 0}, false},
		{NewDepositData{Username: "alice", PriceFloat: -5}, false},
		{NewDepositData{PriceFloat: 100}, false},
		{NewDepositData{Username: "alice", PriceFloat: 100, Webhook: "https://example.com/hook"}, true},
		{NewDepositData{Username: "alice", PriceFloat: 100, Webhook: "garbage"}, false},
	}

	for _, c := range cases {
		err := v.Struct(c.data)
		if (err == nil) != c.valid {
			t.Fatalf("data %+v: valid = %v, want %v (err: %v)", c.data, err == nil, c.valid, err)
		}
	}
}
