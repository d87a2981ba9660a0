package service

import (
	"gateway/internal/domain"
	"gateway/internal/logger"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestParseProxy(t *testing.T) {
	proxies := []struct {
		str   string
		valid bool
	}{
		{"login:password@ip:port", true},
		{"login:password:ip:port", false},
		{"login", false},
		{"login:password:", false},
		{"login:password:127.0.0.1:1234:", false},
		{"login:password@127.0.0.1:1234", true},
		{"", false},
		{" ", false},
		// structurally fine but fields below the minimum length
		{"a:bb@cc:dd", false},
		{"login:password@127.0.0.1:1", false},
		{":password@127.0.0.1:1234", false},
	}

	s := WebhookSenderService{}

	for _, i := range proxies {
		_, err := s.parseProxy(i.str)
		if err != nil && i.valid {
			t.Fatal(err)
		}
		if err == nil && !i.valid {
			t.Fatalf("expected error for %q", i.str)
		}
	}
}

func TestUpdateListDropsInvalid(t *testing.T) {
	l := logger.Init(false)
	s := NewWebhookSenderService(nil, l)

	s.UpdateList([]string{"login:password@127.0.0.1:1234", "garbage", ""})

	list := s.GetList()
	if len(list) != 1 {
		t.Fatalf("got %d proxies, want 1", len(list))
	}
}

func TestSendDedupe(t *testing.T) {
	l := logger.Init(false)
	s := NewWebhookSenderService(nil, l)

	info := domain.ResponseDepositInfo{
		Id:     gofakeit.UUID(),
		Price:  "100",
		Status: "confirmed",
	}

	// pretend it already went out
	s.cache.SetNoExp(info.Id, true)

	if err := s.Send("http://127.0.0.1:9999", info); err == nil {
		t.Fatal("expected duplicate-send error")
	}
}
