package natsdomain

import "testing"

func TestNewMsgId(t *testing.T) {
	id := NewMsgId("abc", MsgActionConfirmed)
	if id != "abc_confirmed" {
		t.Fatalf("got %s", id)
	}
}

func TestSubjects(t *testing.T) {
	if SubjJsDepositConfirmed.String() != "deposits.js.confirmed" {
		t.Fatal(SubjJsDepositConfirmed.String())
	}
	if SubjJsDepositExpired.String() != "deposits.js.expired" {
		t.Fatal(SubjJsDepositExpired.String())
	}
}
