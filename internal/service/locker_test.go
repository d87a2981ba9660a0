package service

import (
	"gateway/internal/infra/cache"
	"testing"
)

func TestLocker(t *testing.T) {
	s := NewLockerService(cache.InitStorage())

	if s.IsLocked("a") {
		t.Fatal("fresh key is locked")
	}

	s.Lock("a")
	if !s.IsLocked("a") {
		t.Fatal("key not locked")
	}

	s.Unlock("a")
	if s.IsLocked("a") {
		t.Fatal("key still locked")
	}
}
