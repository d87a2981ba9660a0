package service

import (
	"fmt"
	"gateway/internal/domain"
	"gateway/internal/infra/metrics"
	"gateway/internal/infra/nats"
	"gateway/internal/logger"
	"gateway/internal/repository"
	"gateway/pkg/nats/natsdomain"
	"gateway/pkg/utils"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OutboxEventsService struct {
	repo     repository.Events
	deposits Deposits
	bonus    Bonus
	webhook  WebhookSender

	natsinfra *nats.NatsInfra

	db *gorm.DB
	l  logger.Logger
}

func NewOutboxEventsService(deposits Deposits, bonus Bonus, natsinfra *nats.NatsInfra, db *gorm.DB, l logger.Logger, repo repository.Events, webhook WebhookSender) *OutboxEventsService {
	return &OutboxEventsService{deposits: deposits, bonus: bonus, natsinfra: natsinfra, db: db, l: l, repo: repo, webhook: webhook}
}

// StartProcessEvents scans the events table and handles new entries.
// An event stays "new" until its handler committed, so a crash mid-way
// only redelivers, never loses.
func (s *OutboxEventsService) StartProcessEvents() {
	const sleepTime = 10 * time.Second

	go func() {
		for {
			events, err := getNewEvents(s.db, 20, time.Second*1)
			if err != nil {
				time.Sleep(sleepTime)
				continue
			}

			for _, event := range events {
				switch event.Type {
				case domain.EVENT_DEPOSIT_CREDIT:
					s.handleDepositCreditEvent(event)
				case domain.EVENT_WEBHOOK:
					s.handleWebhookEvent(event)
				default:
					s.l.Debug("invalid event type: " + event.Type)
					continue
				}
			}

			time.Sleep(sleepTime)
		}
	}()
}

func (s *OutboxEventsService) handleWebhookEvent(event domain.Events) {
	payload, err := utils.Unmarshal[domain.WebhookPayload]([]byte(event.Payload))
	if err != nil {
		s.l.Debug("Unmarshal[domain.WebhookPayload]: " + err.Error())
		return
	}

	go func() {
		if err := s.webhook.Send(payload.Url, payload.Info); err != nil {
			s.l.Debug("send webhook error: "+err.Error(), "url", payload.Url, "invoice_id", payload.InvoiceID)
		}
		if _, err := s.repo.Done(s.db, event.RelationID, domain.EVENT_WEBHOOK); err != nil {
			s.l.Debug("mark webhook event done error: "+err.Error(), "invoice_id", payload.InvoiceID)
		}
	}()
}

// handleDepositCreditEvent runs the bonus-ledger credit for one confirmed
// invoice. Credit and Done commit in one transaction, the event row is the
// at-most-once guard against double-crediting.
func (s *OutboxEventsService) handleDepositCreditEvent(event domain.Events) {
	payload, err := utils.Unmarshal[domain.PayloadDepositCredit]([]byte(event.Payload))
	if err != nil {
		s.l.Debug("Unmarshal[domain.PayloadDepositCredit]: " + err.Error())
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		s.l.Debug("invalid event amount: "+payload.Amount, "invoice_id", payload.InvoiceID)
		return
	}

	var result *ApplyResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result, err = s.creditOnce(tx, event, payload, amount)
		return err
	})
	if err != nil {
		s.l.Debug("apply deposit error: "+err.Error(), "invoice_id", payload.InvoiceID)
		return
	}
	if result == nil { // already credited elsewhere
		return
	}

	metrics.DepositsConfirmed.Inc()

	s.publishConfirmed(payload, amount, result)
}

// creditOnce claims the event first: the status flip takes the row lock and
// its affected-rows count is the at-most-once guard, a second transaction
// sees zero rows and skips the credit. Nil result means someone else won.
func (s *OutboxEventsService) creditOnce(tx *gorm.DB, event domain.Events, payload *domain.PayloadDepositCredit, amount decimal.Decimal) (*ApplyResult, error) {
	claimed, err := s.repo.Done(tx, event.RelationID, domain.EVENT_DEPOSIT_CREDIT)
	if err != nil {
		return nil, err
	}
	if claimed == 0 {
		return nil, nil
	}

	return s.bonus.ApplyDeposit(tx, payload.Username, payload.InvoiceID, amount)
}

func (s *OutboxEventsService) publishConfirmed(payload *domain.PayloadDepositCredit, amount decimal.Decimal, result *ApplyResult) {
	if s.natsinfra == nil { // events disabled
		return
	}

	invoice, err := s.deposits.FindByID(s.db, payload.InvoiceID)
	if err != nil {
		s.l.Debug("find invoice error: "+err.Error(), "invoice_id", payload.InvoiceID)
		return
	}

	msg := utils.MustMarshal(natsdomain.MsgDepositConfirmed{
		InvoiceID: payload.InvoiceID,
		Username:  payload.Username,
		Amount:    amount,
		Currency:  invoice.Currency,
		Network:   invoice.Network,
		Bonus:     result.Bonus,
	})

	err = s.natsinfra.JsPublishMsgId(natsdomain.SubjJsDepositConfirmed.String(), msg, natsdomain.NewMsgId(payload.InvoiceID, natsdomain.MsgActionConfirmed))
	if err != nil {
		s.l.TemplNatsError("publish deposit confirmed error", natsdomain.SubjJsDepositConfirmed.String(), err)
	}
}

func selectEventsFromDb(tx *gorm.DB, count int) ([]domain.Events, error) {
	var events []domain.Events
	return events, tx.Where(&domain.Events{Status: "new"}).Limit(count).Find(&events).Error
}

const errNoValidEvents = "no valid events"

// getNewEvents returns new events older than timeDiff, so an event created by
// a still-open transaction of this very scan cycle is not picked up early.
func getNewEvents(tx *gorm.DB, count int, timeDiff time.Duration) ([]domain.Events, error) {
	var validEvents []domain.Events

	events, err := selectEventsFromDb(tx, count)
	if err != nil {
		return nil, err
	}

	for _, x := range events {
		if time.Since(x.CreatedAt) > timeDiff {
			validEvents = append(validEvents, x)
		}
	}

	if len(validEvents) == 0 {
		return nil, fmt.Errorf(errNoValidEvents)
	}

	return validEvents, nil
}
