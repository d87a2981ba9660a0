package bitcart

import (
	"encoding/json"
	"gateway/internal/domain"
	"testing"
)

func TestNormalizeApiBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://pay.example.com", "https://pay.example.com/api"},
		{"https://pay.example.com/", "https://pay.example.com/api"},
		{"https://pay.example.com/api", "https://pay.example.com/api"},
		{"https://pay.example.com/admin", "https://pay.example.com/api"},
		{"https://pay.example.com/admin/", "https://pay.example.com/api"},
		{"https://pay.example.com/ADMIN", "https://pay.example.com/api"},
		{"", ""},
	}

	for _, x := range tests {
		if got := NormalizeApiBase(x.in); got != x.want {
			t.Fatalf("NormalizeApiBase(%q) = %q, want %q", x.in, got, x.want)
		}
	}
}

func TestAuthHeader(t *testing.T) {
	if AuthHeader("abc") != "Token abc" {
		t.Fatal("bare token must get the Token prefix")
	}
	if AuthHeader("Token abc") != "Token abc" {
		t.Fatal("prefixed token must stay untouched")
	}
	if AuthHeader("") != "" {
		t.Fatal("empty token must stay empty")
	}
}

func TestExtractAddressPriority(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"address":"direct"}`, "direct"},
		{`{"payment_address":"pa"}`, "pa"},
		{`{"payment":{"address":"nested"}}`, "nested"},
		{`{"payments":[{"address":"first"}]}`, "first"},
		{`{"addresses":["plain"]}`, "plain"},
		{`{"payment_method":{"address":"pm"}}`, "pm"},
		{`{"payment_methods":[{"address":"pms"}]}`, "pms"},
		{`{"payment_methods":[{"destination":"dest"}]}`, "dest"},
		{`{"address":"direct","payments":[{"address":"loses"}]}`, "direct"},
		{`{"payments":[]}`, ""},
		{`{}`, ""},
	}

	for _, x := range tests {
		var obj map[string]any
		if err := json.Unmarshal([]byte(x.body), &obj); err != nil {
			t.Fatal(err)
		}
		if got := ExtractAddress(obj); got != x.want {
			t.Fatalf("ExtractAddress(%s) = %q, want %q", x.body, got, x.want)
		}
	}
}

// same upstream body, same address, every time
func TestExtractAddressIdempotent(t *testing.T) {
	var obj map[string]any
	body := `{"payment_methods":[{"destination":"TVjsyZ7fYF3qLF6BQgPmTEZy1xrNNyVAAA"}]}`
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		t.Fatal(err)
	}

	first := ExtractAddress(obj)
	for range 50 {
		if ExtractAddress(obj) != first {
			t.Fatal("extraction is not idempotent")
		}
	}
	if first != "TVjsyZ7fYF3qLF6BQgPmTEZy1xrNNyVAAA" {
		t.Fatal(first)
	}
}

func TestExtractStatusPriority(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"status":"Pending"}`, "pending"},
		{`{"payment_status":"PAID"}`, "paid"},
		{`{"state":"complete"}`, "complete"},
		{`{"invoice_status":"Expired"}`, "expired"},
		{`{"status":"new","state":"loses"}`, "new"},
		{`{}`, ""},
	}

	for _, x := range tests {
		var obj map[string]any
		if err := json.Unmarshal([]byte(x.body), &obj); err != nil {
			t.Fatal(err)
		}
		if got := ExtractStatus(obj); got != x.want {
			t.Fatalf("ExtractStatus(%s) = %q, want %q", x.body, got, x.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Status
	}{
		{"Confirmed", domain.STATUS_CONFIRMED},
		{"PAID", domain.STATUS_CONFIRMED},
		{"confirmed", domain.STATUS_CONFIRMED},
		{"complete", domain.STATUS_CONFIRMED},
		{"Pending", domain.STATUS_PENDING},
		{"processing", domain.STATUS_PENDING},
		{"expired", domain.STATUS_EXPIRED},
		{"Expired", domain.STATUS_EXPIRED},
		{"cancelled", domain.STATUS_CANCELLED},
		{"invalid", domain.STATUS_CANCELLED},
		{"new", domain.STATUS_NEW},
		{"", domain.STATUS_NEW},
	}

	for _, x := range tests {
		if got := ClassifyStatus(x.in); got != x.want {
			t.Fatalf("ClassifyStatus(%q) = %s, want %s", x.in, got.ToString(), x.want.ToString())
		}
	}
}

func TestExtractPayUrl(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"public_url":"https://a"}`, "https://a"},
		{`{"checkout_link":"https://b"}`, "https://b"},
		{`{"links":{"checkout":"https://c"}}`, "https://c"},
		{`{"pay_url":"https://d"}`, "https://d"},
		{`{"public_url":"https://a","pay_url":"https://d"}`, "https://a"},
		{`{}`, ""},
	}

	for _, x := range tests {
		var obj map[string]any
		if err := json.Unmarshal([]byte(x.body), &obj); err != nil {
			t.Fatal(err)
		}
		if got := ExtractPayUrl(obj); got != x.want {
			t.Fatalf("ExtractPayUrl(%s) = %q, want %q", x.body, got, x.want)
		}
	}
}

func TestExtractAddressFromList(t *testing.T) {
	var list []any
	if err := json.Unmarshal([]byte(`[{"destination":"dst"},{"address":"ignored"}]`), &list); err != nil {
		t.Fatal(err)
	}

	if got := ExtractAddressFromList(list); got != "dst" {
		t.Fatal(got)
	}

	if ExtractAddressFromList(nil) != "" {
		t.Fatal("nil list must yield empty address")
	}
}
