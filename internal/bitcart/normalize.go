package bitcart

import (
	"encoding/json"
	"gateway/internal/domain"
	"strconv"
	"strings"
)

// NormalizeApiBase turns whatever the operator pasted into a usable api base:
// the admin panel url loses its /admin suffix and the base always ends in /api.
func NormalizeApiBase(url string) string {
	if url == "" {
		return ""
	}

	url = strings.TrimRight(url, "/")

	if strings.HasSuffix(strings.ToLower(url), "/admin") {
		url = url[:len(url)-len("/admin")]
		url = strings.TrimRight(url, "/")
	}

	if strings.HasSuffix(url, "/api") {
		return url
	}
	return url + "/api"
}

// AuthHeader prepends the Token scheme if the operator stored a bare token.
func AuthHeader(token string) string {
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Token ") {
		return token
	}
	return "Token " + token
}

// ordered source paths per target field. upstream responses are not
// consistent between versions, so every field is probed in fixed priority.
var addressPaths = [][]string{
	{"address"},
	{"payment_address"},
	{"payment", "address"},
	{"payments", "0", "address"},
	{"addresses", "0"},
	{"payment_method", "address"},
	{"payment_methods", "0", "address"},
	{"payment_methods", "0", "destination"},
}

var payUrlPaths = [][]string{
	{"public_url"},
	{"checkout_link"},
	{"links", "checkout"},
	{"pay_url"},
}

var statusPaths = [][]string{
	{"status"},
	{"payment_status"},
	{"state"},
	{"invoice_status"},
}

var expiresAtPaths = [][]string{
	{"expiration"},
	{"expires_at"},
}

func ExtractAddress(obj map[string]any) string {
	return probe(obj, addressPaths)
}

func ExtractPayUrl(obj map[string]any) string {
	return probe(obj, payUrlPaths)
}

func ExtractStatus(obj map[string]any) string {
	return strings.ToLower(probe(obj, statusPaths))
}

func ExtractExpiresAt(obj map[string]any) string {
	return probe(obj, expiresAtPaths)
}

// ExtractAddressFromList probes the first element of an auxiliary
// payments / payment-methods response.
func ExtractAddressFromList(list []any) string {
	if len(list) == 0 {
		return ""
	}

	first, ok := list[0].(map[string]any)
	if !ok {
		return ""
	}

	for _, path := range [][]string{{"address"}, {"payment_address"}, {"destination"}, {"payment", "address"}} {
		if v := dig(first, path); v != "" {
			return v
		}
	}
	return ""
}

// ClassifyStatus maps a lower-cased upstream status string onto the local
// status enum. comparison is case-insensitive and substring based, matching
// the shapes seen in the wild ("Confirmed", "PAID", "complete").
func ClassifyStatus(s string) domain.Status {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "":
		return domain.STATUS_NEW
	case strings.Contains(s, "expire"):
		return domain.STATUS_EXPIRED
	case strings.Contains(s, "cancel"), strings.Contains(s, "invalid"):
		return domain.STATUS_CANCELLED
	case strings.Contains(s, "confirmed"), strings.Contains(s, "paid"), strings.Contains(s, "complete"):
		return domain.STATUS_CONFIRMED
	case s == "new":
		return domain.STATUS_NEW
	default:
		return domain.STATUS_PENDING
	}
}

// NumField returns a numeric field as its exact decimal string.
func NumField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case json.Number:
		return v.String()
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// StrField returns a plain string field.
func StrField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// InvoiceFallbackURL derives the hosted checkout link when the upstream
// response carries none: the public invoice page of the processor host.
func InvoiceFallbackURL(apiBase string, id string) string {
	host := strings.TrimSuffix(apiBase, "/api")
	if host == "" {
		return ""
	}
	return host + "/i/" + id
}

func probe(obj map[string]any, paths [][]string) string {
	if obj == nil {
		return ""
	}

	for _, path := range paths {
		if v := dig(obj, path); v != "" {
			return v
		}
	}
	return ""
}

// dig walks a path of map keys; a numeric segment indexes into an array.
func dig(obj any, path []string) string {
	cur := obj

	for _, seg := range path {
		switch v := cur.(type) {
		case map[string]any:
			cur = v[seg]
		case []any:
			if seg != "0" || len(v) == 0 {
				return ""
			}
			cur = v[0]
		default:
			return ""
		}
	}

	s, _ := cur.(string)
	return s
}
