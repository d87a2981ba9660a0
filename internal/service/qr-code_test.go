package service

import (
	"testing"
)

func TestFindOrNew(t *testing.T) {
	s := NewQrCodesService()

	first, err := s.FindOrNew("TXYZa1b2c3d4e5f6g7h8i9j0k1l2m3n4o5")
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("empty qr code")
	}

	second, err := s.FindOrNew("TXYZa1b2c3d4e5f6g7h8i9j0k1l2m3n4o5")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("cached qr code differs")
	}
}
