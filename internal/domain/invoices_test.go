package domain

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	for i, name := range Statuses {
		if StrToStatus(name) != Status(i) {
			t.Fatalf("status %s does not round trip", name)
		}
	}

	if StrToStatus("nonsense") != STATUS_NEW {
		t.Fatal("unknown status must map to new")
	}
}

func TestStatusForwardOnly(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{STATUS_NEW, STATUS_PENDING, true},
		{STATUS_NEW, STATUS_CONFIRMED, true},
		{STATUS_PENDING, STATUS_CONFIRMED, true},
		{STATUS_PENDING, STATUS_EXPIRED, true},
		{STATUS_PENDING, STATUS_NEW, false},
		{STATUS_CONFIRMED, STATUS_EXPIRED, false},
		{STATUS_EXPIRED, STATUS_PENDING, false},
		{STATUS_CANCELLED, STATUS_CONFIRMED, false},
	}

	for _, x := range tests {
		if x.from.CanAdvanceTo(x.to) != x.ok {
			t.Fatalf("%s -> %s: want %v", x.from.ToString(), x.to.ToString(), x.ok)
		}
	}
}

func TestStrToNetwork(t *testing.T) {
	tests := []struct {
		in   string
		want Network
	}{
		{"TRC20", NETWORK_TRC20},
		{"trc20", NETWORK_TRC20},
		{" bep20 ", NETWORK_BEP20},
		{"ERC20", NETWORK_ERC20},
		{"", NETWORK_NONE},
		{"BTC", NETWORK_NONE},
	}

	for _, x := range tests {
		if StrToNetwork(x.in) != x.want {
			t.Fatalf("StrToNetwork(%q) != %s", x.in, x.want.ToString())
		}
	}
}
