package service

import (
	"context"
	"gateway/internal/bitcart"
	"gateway/internal/config"
	"gateway/internal/domain"
	"gateway/internal/infra/cache"
	"gateway/internal/infra/metrics"
	"gateway/internal/infra/postgres"
	"gateway/internal/logger"
	"gateway/internal/repository"
	"gateway/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultInvoiceTTL = 15 * time.Minute

type DepositsService struct {
	repo   repository.Invoices
	client *bitcart.Client
	db     *gorm.DB
	cache  *cache.Cache
	l      logger.Logger
	config *config.Config
}

func NewDepositsService(db *gorm.DB, client *bitcart.Client, repo repository.Invoices, l logger.Logger, cache *cache.Cache, config *config.Config) *DepositsService {
	return &DepositsService{repo: repo, client: client, db: db, l: l, cache: cache, config: config}
}

type CreateDepositParams struct {
	Username string
	Price    decimal.Decimal
	Currency string
	Network  string
	Webhook  string // merchant webhook url, notified on terminal status
	Origin   string // request origin, base for callback urls when app_base_url is unset
}

// Create validates the request, creates the upstream invoice, does the bounded
// address follow-up and persists the local row. Address may stay empty.
func (s *DepositsService) Create(ctx context.Context, params CreateDepositParams) (*domain.ResponseDepositInfo, *domain.Invoices, error) {
	var errid = logger.GenErrorId()

	if !params.Price.IsPositive() {
		return nil, nil, domain.ErrInvalidAmount
	}

	currency := strings.TrimSpace(params.Currency)
	if currency == "" {
		currency = "USDT"
	}

	network := domain.StrToNetwork(params.Network)

	base := s.config.Bitcart.AppBaseURL
	if base == "" {
		base = strings.TrimRight(params.Origin, "/")
	}

	createParams := bitcart.CreateInvoiceParams{
		Price:    params.Price,
		Currency: currency,
		Metadata: map[string]any{
			"username": params.Username,
			"network":  network.ToString(),
		},
	}
	if base != "" {
		createParams.NotificationURL = base + "/v1/webhooks/bitcart"
		createParams.RedirectURL = base + "/payments/success"
	}

	obj, err := s.client.CreateInvoice(ctx, createParams)
	if err != nil {
		s.l.TemplDepositErr("create invoice error: "+err.Error(), errid, logger.NA, params.Price, currency, logger.NA, params.Username, logger.NA)
		return nil, nil, err
	}

	invoiceId := bitcart.StrField(obj, "id")
	if invoiceId == "" {
		s.l.TemplDepositErr("upstream returned no invoice id", errid, logger.NA, params.Price, currency, logger.NA, params.Username, logger.NA)
		return nil, nil, domain.ErrInternalServerError
	}

	price := bitcart.NumField(obj, "price")
	if price == "" {
		price = params.Price.String()
	}
	if c := bitcart.StrField(obj, "currency"); c != "" {
		currency = c
	}

	payUrl := bitcart.ExtractPayUrl(obj)
	if payUrl == "" {
		payUrl = bitcart.InvoiceFallbackURL(s.client.PrimaryBase(), invoiceId)
	}

	endTimestamp := parseExpiry(bitcart.ExtractExpiresAt(obj), defaultInvoiceTTL)

	address := bitcart.ExtractAddress(obj)
	if address == "" {
		address = s.client.WaitForAddress(ctx, invoiceId, bitcart.DefaultAddressPolicy)
	}

	status := bitcart.ClassifyStatus(bitcart.ExtractStatus(obj))
	if status == domain.STATUS_NEW {
		status = domain.STATUS_PENDING // locally a fresh invoice is already awaited
	}

	invoice := &domain.Invoices{
		InvoiceID:    invoiceId,
		Username:     params.Username,
		Status:       status,
		EndTimestamp: endTimestamp,
		Amount:       params.Price,
		Currency:     currency,
		Network:      network.ToString(),
		Address:      address,
		PayURL:       payUrl,
		Webhook:      params.Webhook,
	}

	if err := s.repo.Create(s.db, invoice); err != nil {
		s.l.TemplDepositErr("persist invoice error: "+err.Error(), errid, invoiceId, params.Price, currency, logger.NA, params.Username, logger.NA)
		return nil, nil, domain.ErrInternalServerError
	}

	s.cache.Set(invoice.InvoiceID, invoice, time.Minute*5)
	metrics.DepositsCreated.Inc()

	s.l.TemplDepositInfo("new deposit", errid, invoiceId, params.Price, currency, logger.NA, params.Username, logger.NA)

	return s.ToResponse(invoice, rawStatusFields(obj)), invoice, nil
}

func (s *DepositsService) FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	return s.repo.FindByID(tx, invoiceId)
}

func (s *DepositsService) FindGlobal(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	if invoiceId == "" || len(invoiceId) > 64 {
		return nil, domain.ErrInvalidInvoiceId
	}

	var errid = logger.GenErrorId()

	cacheV := s.cache.Load(invoiceId)
	if cacheV != nil { // found
		return utils.SafeCast[*domain.Invoices](cacheV)
	}

	invoice, err := s.repo.FindByID(s.db, invoiceId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrInvoiceIdNotFound
		}

		s.l.TemplDepositErr("find invoice by id error: "+err.Error(), errid, invoiceId, decimal.Zero, logger.NA, logger.NA, logger.NA, logger.NA)
		return nil, domain.ErrInternalServerError
	}

	return invoice, nil
}

func (s *DepositsService) UpdateAndSave(tx *gorm.DB, invoice *domain.Invoices) error {
	err := s.repo.Update(tx, invoice)
	if err != nil {
		return err
	}

	s.cache.Set(invoice.InvoiceID, invoice, time.Minute*5)
	return nil
}

func (s *DepositsService) FindAndSaveToCache(invoiceId string) (*domain.Invoices, error) {
	invoice, err := s.FindGlobal(s.db, invoiceId)
	if err != nil {
		return nil, err
	}

	s.cache.Set(invoiceId, invoice, time.Minute*5)

	return invoice, nil
}

// ToResponse builds the normalized descriptor returned to the storefront
// and carried in webhook payloads.
func (s *DepositsService) ToResponse(invoice *domain.Invoices, raw map[string]any) *domain.ResponseDepositInfo {
	return &domain.ResponseDepositInfo{
		Id:        invoice.InvoiceID,
		Price:     invoice.Amount.String(),
		Currency:  invoice.Currency,
		Status:    invoice.Status.ToString(),
		Address:   invoice.Address,
		PayUrl:    invoice.PayURL,
		Network:   invoice.Network,
		ExpiresAt: time.Unix(invoice.EndTimestamp, 0).UTC().Format(time.RFC3339),
		Raw:       raw,
	}
}

// rawStatusFields keeps the original status-bearing fields for clients that
// still pattern-match the upstream shapes.
func rawStatusFields(obj map[string]any) map[string]any {
	raw := make(map[string]any)
	for _, k := range []string{"status", "payment_status", "state"} {
		if v, ok := obj[k]; ok {
			raw[k] = v
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// parseExpiry accepts RFC3339, a unix-seconds number or nothing at all.
func parseExpiry(raw string, ttl time.Duration) int64 {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.Unix()
		}
		if sec, err := strconv.ParseInt(raw, 10, 64); err == nil && sec > 0 {
			return sec
		}
	}
	return time.Now().Add(ttl).Unix()
}
