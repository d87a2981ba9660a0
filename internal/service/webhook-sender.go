package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gateway/internal/domain"
	"gateway/internal/infra/cache"
	"gateway/internal/infra/metrics"
	"gateway/internal/logger"
	"gateway/pkg/rr"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/proxy"
)

// WebhookSenderService delivers deposit notifications to merchant webhook
// urls, rotating over a configured SOCKS5 proxy list. A sent invoice id is
// remembered so a redelivered event does not notify twice.
type WebhookSenderService struct {
	rr    rr.RoundRobin
	list  *atomic.Pointer[[]string]
	l     logger.Logger
	cache *cache.Cache
}

func NewWebhookSenderService(proxyList []string, l logger.Logger) *WebhookSenderService {
	var list atomic.Pointer[[]string]
	list.Store(&proxyList)

	return &WebhookSenderService{rr: rr.New(&list), list: &list, l: l, cache: cache.InitStorage()}
}

type webhookRoundTripper struct {
	r http.RoundTripper
}

func (wrt webhookRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Add("Sec-Fetch-Dest", "empty")
	r.Header.Add("Sec-Fetch-Mode", "cors")
	r.Header.Add("Sec-Fetch-Site", "same-origin")
	r.Header.Add("TE", "trailers")
	r.Header.Add("User-Agent", "gateway-webhook")
	return wrt.r.RoundTrip(r)
}

func (s *WebhookSenderService) sendWithoutProxy(url string, payload []byte) error {
	client := http.Client{
		Timeout: time.Second * 5,
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	return nil
}

func (s *WebhookSenderService) sendWithProxy(url string, stringProxy string, payload []byte) error {
	socks, err := s.parseProxy(stringProxy)
	if err != nil {
		return fmt.Errorf("can't parse proxy: %s", err.Error())
	}

	auth := proxy.Auth{
		User:     socks.User,
		Password: socks.Pass,
	}

	dialer, err := proxy.SOCKS5("tcp", socks.IP+":"+socks.Port, &auth, proxy.Direct)
	if err != nil {
		return err
	}

	dialContext := func(ctx context.Context, network, address string) (net.Conn, error) {
		return dialer.Dial(network, address)
	}

	transport := &http.Transport{
		DialContext:       dialContext,
		DisableKeepAlives: true,
	}

	client := &http.Client{
		Transport: webhookRoundTripper{r: transport},
		Timeout:   5 * time.Second,
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	return nil
}

func (s *WebhookSenderService) Send(url string, info domain.ResponseDepositInfo) error {
	var MAX_ATTEMPTS = s.rr.Count()
	var err error

	if exists := s.cache.Load(info.Id); exists != nil {
		return fmt.Errorf("webhook already sent")
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}

	stringProxy, ok := s.rr.Next()
	err = func() error {
		var attempts int

	sendReq:
		attempts++

		if attempts > MAX_ATTEMPTS && ok {
			return fmt.Errorf("max attempts exceeded")
		}

		if !ok {
			s.l.Debug("can't get proxy, sending without proxy")
			err = s.sendWithoutProxy(url, payload)
			if err != nil {
				s.l.TemplWebhookErr("send without proxy error: "+err.Error(), url, attempts, logger.NA, payload)
				return err
			}
			return nil
		}

		err = s.sendWithProxy(url, stringProxy, payload)
		if err != nil {
			s.l.TemplWebhookErr("send with proxy error: "+err.Error(), url, attempts, stringProxy, payload)

			stringProxy, ok = s.rr.Next()
			time.Sleep(5 * time.Second)
			goto sendReq
		}
		return nil
	}()
	if err == nil {
		s.cache.SetNoExp(info.Id, true)
		metrics.WebhooksSent.WithLabelValues("ok").Inc()
	} else {
		metrics.WebhooksSent.WithLabelValues("error").Inc()
	}

	return err
}

// fields exported so the validator sees them, unexported fields are skipped
type parsedProxy struct {
	User string `validate:"required,gte=2"`
	Pass string `validate:"required,gte=2"`
	IP   string `validate:"required,gte=2"`
	Port string `validate:"required,gte=2"`
}

// login:password@ip:port
func (s *WebhookSenderService) parseProxy(str string) (parsedProxy, error) {
	splitA := strings.Split(str, ":") //  to [user pass@ip port]

	if len(splitA) != 3 {
		return parsedProxy{}, fmt.Errorf("invalid proxy format: given: %s", str)
	}

	splitB := strings.Split(splitA[1], "@") // to [pass ip]

	if len(splitB) != 2 {
		return parsedProxy{}, fmt.Errorf("invalid proxy format: given: %s", str)
	}

	var pp = parsedProxy{}

	pp.User = splitA[0]
	pp.Pass = splitB[0]

	pp.IP = splitB[1]
	pp.Port = splitA[2]

	validator := validator.New()
	err := validator.Struct(pp)
	if err != nil {
		return parsedProxy{}, err
	}

	return pp, nil
}

func (s *WebhookSenderService) UpdateList(proxies []string) {
	var validProxies []string

	for _, proxy := range proxies {
		_, err := s.parseProxy(proxy)
		if err != nil {
			s.l.Debug("invalid proxy: " + proxy)
			continue
		}
		validProxies = append(validProxies, proxy)
	}

	s.list.Store(&validProxies)
}

func (s *WebhookSenderService) GetList() []string {
	listPtr := s.list.Load()
	if listPtr == nil {
		return []string{}
	}

	return *listPtr
}
