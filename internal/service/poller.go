package service

import (
	"context"
	"gateway/internal/config"
	"gateway/internal/domain"
	"gateway/internal/infra/metrics"
	"gateway/internal/logger"
	"gateway/internal/repository"
	"gateway/pkg/utils"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
)

const (
	pollInterval   = 5 * time.Second
	reconnectDelay = 15 * time.Second // after error wait and try again
)

type PollerService struct {
	db         *gorm.DB
	deposits   Deposits
	invoices   repository.Invoices
	reconciler Reconciler
	events     repository.Events
	locker     Locker
	l          logger.Logger
	config     *config.Config
}

func NewPollerService(db *gorm.DB, deposits Deposits, invoices repository.Invoices, reconciler Reconciler, events repository.Events, locker Locker, l logger.Logger, config *config.Config) *PollerService {
	return &PollerService{db: db, deposits: deposits, invoices: invoices, reconciler: reconciler, events: events, locker: locker, l: l, config: config}
}

// RunCheck watches one invoice until a terminal status or expiry. The locker
// keeps a single watcher per invoice, a second start is a no-op. The watcher
// context carries the invoice deadline, so when it fires the invoice is
// expired right here instead of waiting for the next boot sweep.
func (s *PollerService) RunCheck(ctx context.Context, cancel context.CancelFunc, invoice *domain.Invoices) {
	var errid = logger.GenErrorId()

	if s.locker.IsLocked(invoice.InvoiceID) {
		cancel()
		return
	}

	defer func() {
		cancel()
		s.locker.Unlock(invoice.InvoiceID)
	}()

	s.locker.Lock(invoice.InvoiceID)

	for {
		select {
		case <-ctx.Done():
			s.expireOverdue(invoice)
			return
		case <-time.After(pollInterval):
		}

		fresh, err := s.reload(invoice)
		if err != nil {
			s.l.TemplDepositErr("reload invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, logger.NA, invoice.Username, logger.NA)
			time.Sleep(reconnectDelay)
			continue
		}
		invoice = fresh

		if invoice.Status.IsTerminal() {
			return
		}

		if time.Now().Unix() > invoice.EndTimestamp {
			s.expire(invoice)
			return
		}

		metrics.PollTicks.Inc()

		result, err := s.check(ctx, invoice)
		if err != nil {
			s.l.TemplDepositErr("fetch invoice status error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, logger.NA, invoice.Username, logger.NA)
			time.Sleep(reconnectDelay)
			continue
		}

		// the upstream may assign the address and checkout link late
		var dirty bool
		if invoice.Address == "" && result.Address != "" {
			invoice.Address = result.Address
			dirty = true
		}
		if invoice.PayURL == "" && result.PayUrl != "" {
			invoice.PayURL = result.PayUrl
			dirty = true
		}
		if dirty {
			if err := s.deposits.UpdateAndSave(s.db, invoice); err != nil {
				s.l.TemplDepositErr("update invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, logger.NA, invoice.Username, logger.NA)
			}
		}

		if !invoice.Status.CanAdvanceTo(result.Status) {
			continue
		}

		if err := s.advanceTx(invoice, result.Status); err != nil {
			s.l.TemplDepositErr("advance invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, logger.NA, invoice.Username, logger.NA)
			time.Sleep(reconnectDelay)
			continue
		}

		if result.Status.IsTerminal() {
			return
		}
	}
}

// check asks the reconciler, or fabricates a confirmed payment in testing mode.
func (s *PollerService) check(ctx context.Context, invoice *domain.Invoices) (*ReconcileResult, error) {
	if s.config.Testing.Enabled {
		time.Sleep(time.Duration(s.config.Testing.TxConfirmDelay) * time.Second)
		s.l.Debug("testing: fake confirmation", "invoice_id", invoice.InvoiceID, "tx_hash", gofakeit.BitcoinAddress())
		return &ReconcileResult{Status: domain.STATUS_CONFIRMED, RawStatus: "complete", Address: invoice.Address}, nil
	}

	return s.reconciler.FetchInvoiceStatus(ctx, invoice.InvoiceID)
}

// Advance moves the invoice forward and, on confirmation, enqueues the credit
// and webhook events. Runs inside the caller's transaction so the status flip
// and the outbox rows commit together.
func (s *PollerService) Advance(tx *gorm.DB, invoice *domain.Invoices, next domain.Status) error {
	if !invoice.Status.CanAdvanceTo(next) {
		return nil
	}

	invoice.Status = next
	if err := s.deposits.UpdateAndSave(tx, invoice); err != nil {
		return err
	}

	if next != domain.STATUS_CONFIRMED {
		return nil
	}

	creditPayload := utils.MustMarshal(domain.PayloadDepositCredit{
		InvoiceID: invoice.InvoiceID,
		Username:  invoice.Username,
		Amount:    invoice.Amount.String(),
	})
	if err := s.events.Create(tx, domain.EVENT_DEPOSIT_CREDIT, invoice.ID, string(creditPayload)); err != nil {
		return err
	}

	if invoice.Webhook == "" {
		return nil
	}

	webhookPayload := utils.MustMarshal(domain.WebhookPayload{
		InvoiceID: invoice.InvoiceID,
		Url:       invoice.Webhook,
		Info:      *s.deposits.ToResponse(invoice, nil),
	})
	return s.events.Create(tx, domain.EVENT_WEBHOOK, invoice.ID, string(webhookPayload))
}

func (s *PollerService) advanceTx(invoice *domain.Invoices, next domain.Status) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.Advance(tx, invoice, next)
	})
}

// expire marks the invoice expired. A single status update, no outbox rows,
// so it runs outside a transaction.
func (s *PollerService) expire(invoice *domain.Invoices) {
	if err := s.Advance(s.db, invoice, domain.STATUS_EXPIRED); err != nil {
		s.l.Debug("expire invoice error: "+err.Error(), "invoice_id", invoice.InvoiceID)
	}
}

// expireOverdue expires the invoice if it is still pending past its deadline.
// Called on watcher shutdown, where the last poll tick may never have seen
// the deadline pass.
func (s *PollerService) expireOverdue(invoice *domain.Invoices) {
	if fresh, err := s.reload(invoice); err == nil {
		invoice = fresh
	}

	if invoice.Status.IsTerminal() || time.Now().Unix() < invoice.EndTimestamp {
		return
	}

	s.expire(invoice)
}

// reload prefers the cached row so webhook-driven updates are seen between ticks.
func (s *PollerService) reload(invoice *domain.Invoices) (*domain.Invoices, error) {
	return s.deposits.FindAndSaveToCache(invoice.InvoiceID)
}

// RunFindEnd expires pending invoices whose deadline already passed.
// Called once on boot before the autostart pass.
func (s *PollerService) RunFindEnd() {
	invoices, err := s.invoices.FindByStatus(s.db, domain.STATUS_PENDING)
	if err != nil {
		s.l.Debug("find pending invoices error: " + err.Error())
		return
	}

	for _, invoice := range invoices {
		if time.Now().Unix() <= invoice.EndTimestamp {
			continue
		}

		s.expire(invoice)
		time.Sleep(100 * time.Millisecond)
	}
}

// RunAutostartCheck resumes watchers for pending invoices after a restart.
func (s *PollerService) RunAutostartCheck() {
	invoices, err := s.invoices.FindByStatus(s.db, domain.STATUS_PENDING)
	if err != nil {
		s.l.Debug("find pending invoices error: " + err.Error())
		return
	}

	for _, invoice := range invoices {
		if time.Now().Unix() > invoice.EndTimestamp {
			continue // RunFindEnd picks these up
		}

		ctx, cancel := context.WithDeadline(context.Background(), time.Unix(invoice.EndTimestamp, 0))
		go s.RunCheck(ctx, cancel, invoice)
		time.Sleep(500 * time.Millisecond)
	}
}
