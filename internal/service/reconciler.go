package service

import (
	"context"
	"gateway/internal/bitcart"
	"gateway/internal/domain"
	"gateway/internal/logger"
)

type ReconcilerService struct {
	client *bitcart.Client
	l      logger.Logger
}

func NewReconcilerService(client *bitcart.Client, l logger.Logger) *ReconcilerService {
	return &ReconcilerService{client: client, l: l}
}

type ReconcileResult struct {
	Status    domain.Status
	RawStatus string
	Address   string
	PayUrl    string
	ExpiresAt string
}

// FetchInvoiceStatus pulls the upstream invoice and widens the address search
// over the payment sub-resources when the invoice body carries none. Aux
// lookup failures are swallowed, the main fetch is the source of truth.
func (s *ReconcilerService) FetchInvoiceStatus(ctx context.Context, invoiceId string) (*ReconcileResult, error) {
	if invoiceId == "" {
		return nil, domain.ErrInvalidInvoiceId
	}

	obj, err := s.client.GetInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}

	rawStatus := bitcart.ExtractStatus(obj)

	result := &ReconcileResult{
		Status:    bitcart.ClassifyStatus(rawStatus),
		RawStatus: rawStatus,
		Address:   bitcart.ExtractAddress(obj),
		PayUrl:    bitcart.ExtractPayUrl(obj),
		ExpiresAt: bitcart.ExtractExpiresAt(obj),
	}

	if result.Address == "" {
		if payments, err := s.client.GetPayments(ctx, invoiceId); err == nil {
			result.Address = bitcart.ExtractAddressFromList(payments)
		}
	}

	if result.Address == "" {
		if methods, err := s.client.GetPaymentMethods(ctx, invoiceId); err == nil {
			result.Address = bitcart.ExtractAddressFromList(methods)
		}
	}

	return result, nil
}
