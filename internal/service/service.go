package service

import (
	"context"
	"gateway/internal/bitcart"
	"gateway/internal/config"
	"gateway/internal/domain"
	"gateway/internal/infra/cache"
	"gateway/internal/infra/nats"
	"gateway/internal/logger"
	"gateway/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Deposits interface {
	Create(ctx context.Context, params CreateDepositParams) (*domain.ResponseDepositInfo, *domain.Invoices, error)
	FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	UpdateAndSave(tx *gorm.DB, invoice *domain.Invoices) error
	// Tries to find from cache, if not found, searches the database
	FindGlobal(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	// FindGlobal plus a cache refresh, used by the watcher between ticks
	FindAndSaveToCache(invoiceId string) (*domain.Invoices, error)
	ToResponse(invoice *domain.Invoices, raw map[string]any) *domain.ResponseDepositInfo
}

type Reconciler interface {
	// pure function of upstream state, no local mutation
	FetchInvoiceStatus(ctx context.Context, invoiceId string) (*ReconcileResult, error)
}

type Bonus interface {
	Tier(amount decimal.Decimal, alreadyApplied bool) int
	BonusAmount(amount decimal.Decimal, tier int) decimal.Decimal
	// runs inside the given transaction, at-most-once per invoice is the caller's job
	ApplyDeposit(tx *gorm.DB, username string, invoiceId string, amount decimal.Decimal) (*ApplyResult, error)
}

type Accounts interface {
	Get(tx *gorm.DB, username string) (*AccountView, error)
}

type Poller interface {
	RunCheck(ctx context.Context, cancel context.CancelFunc, invoice *domain.Invoices)
	// on confirmed webhook / reconcile result, advance and enqueue events
	Advance(tx *gorm.DB, invoice *domain.Invoices, next domain.Status) error

	// for autostart only
	RunFindEnd()
	RunAutostartCheck()
}

type Withdrawals interface {
	Create(username string, toAddress string, network string, amount decimal.Decimal) (*domain.Withdrawals, error)
}

type Locker interface {
	Lock(key string)
	Unlock(key string)
	IsLocked(key string) bool
}

type QrCodes interface {
	// generates qr code and saves it to cache
	New(content string) (string, error)
	// returns qr code from cache or generates new one
	FindOrNew(content string) (string, error)
}

type WebhookSender interface {
	Send(url string, info domain.ResponseDepositInfo) error
	UpdateList(proxies []string)
	GetList() []string
}

type OutboxEvents interface {
	StartProcessEvents()
}

type Services struct {
	Deposits      Deposits
	Reconciler    Reconciler
	Bonus         Bonus
	Accounts      Accounts
	Poller        Poller
	Withdrawals   Withdrawals
	QrCodes       QrCodes
	WebhookSender WebhookSender
	OutboxEvents  OutboxEvents
}

func NewServices(client *bitcart.Client, natsinfra *nats.NatsInfra, db *gorm.DB, l logger.Logger, config *config.Config) *Services {
	invoicesRepo := repository.InitInvoicesRepo()
	accountsRepo := repository.InitAccountsRepo()
	eventsRepo := repository.InitEventsRepo()
	withdrawalsRepo := repository.InitWithdrawalsRepo()

	lockerService := NewLockerService(cache.InitStorage())

	reconcilerService := NewReconcilerService(client, l)
	depositsService := NewDepositsService(db, client, invoicesRepo, l, cache.InitStorage(), config)
	bonusService := NewBonusService(accountsRepo)

	webhookSender := NewWebhookSenderService(config.ProxyList, l)

	pollerService := NewPollerService(db, depositsService, invoicesRepo, reconcilerService, eventsRepo, lockerService, l, config)

	return &Services{
		Deposits:      depositsService,
		Reconciler:    reconcilerService,
		Bonus:         bonusService,
		Accounts:      NewAccountsService(accountsRepo),
		Poller:        pollerService,
		Withdrawals:   NewWithdrawalsService(db, withdrawalsRepo),
		QrCodes:       NewQrCodesService(),
		WebhookSender: webhookSender,
		OutboxEvents:  NewOutboxEventsService(depositsService, bonusService, natsinfra, db, l, eventsRepo, webhookSender),
	}
}
