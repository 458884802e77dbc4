package sales

import (
	"context"
	"time"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
)

type StoreAPI interface {
	Upsert(ctx context.Context, sale Sale) (Sale, error)
	Get(ctx context.Context, saleID string) (Sale, error)
	List(ctx context.Context, filter Filter) ([]Sale, error)
}

type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
}

type Service struct {
	store StoreAPI
	dir   Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Upsert records one day's sales for a store and currency. Submitting the
// same day again replaces the figures, so a flaky mobile connection can
// retry without double counting. Returns the stored sale and its till
// reconciliation.
func (s *Service) Upsert(ctx context.Context, input UpsertInput) (Sale, Reconciliation, error) {
	currency, err := money.Parse(input.Currency)
	if err != nil {
		return Sale{}, Reconciliation{}, validation.Errorf("currency", "currency must be EUR or GBP")
	}

	store, err := s.dir.GetStore(ctx, input.StoreID)
	if err != nil {
		return Sale{}, Reconciliation{}, err
	}
	if !store.SupportsCurrency(currency) {
		return Sale{}, Reconciliation{}, validation.Errorf("currency", "This store does not support %s", currency)
	}

	if err := validateChannels(input.Channels); err != nil {
		return Sale{}, Reconciliation{}, err
	}
	if err := validation.NonNegative("cashInTill", input.CashInTill); err != nil {
		return Sale{}, Reconciliation{}, err
	}
	if input.SaleDate.IsZero() {
		return Sale{}, Reconciliation{}, validation.Errorf("saleDate", "saleDate is required")
	}

	total := input.Channels.Sum()
	reconciliation := Reconcile(total, input.CashInTill)

	sale := Sale{
		StoreID:    input.StoreID,
		SaleDate:   dateOf(input.SaleDate),
		Currency:   currency,
		Channels:   input.Channels,
		Total:      total,
		CashInTill: input.CashInTill,
		Difference: reconciliation.Difference,
		Notes:      input.Notes,
	}

	stored, err := s.store.Upsert(ctx, sale)
	if err != nil {
		return Sale{}, Reconciliation{}, err
	}
	return stored, reconciliation, nil
}

func (s *Service) Get(ctx context.Context, saleID string) (Sale, error) {
	return s.store.Get(ctx, saleID)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Sale, error) {
	return s.store.List(ctx, filter)
}

// Summary folds matching sales into per-currency channel totals with the
// accumulated till difference.
func (s *Service) Summary(ctx context.Context, filter Filter) (map[money.Currency]ledger.SaleTotals, error) {
	matched, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.SaleEntry, 0, len(matched))
	for _, sale := range matched {
		entries = append(entries, ledger.SaleEntry{
			Currency:   sale.Currency,
			Channels:   sale.Channels,
			CashInTill: sale.CashInTill,
		})
	}
	return ledger.FoldSales(entries), nil
}

func validateChannels(channels ledger.ChannelAmounts) error {
	checks := []struct {
		field string
		value int64
	}{
		{"cash", channels.Cash},
		{"online", channels.Online},
		{"delivery", channels.Delivery},
		{"justEat", channels.JustEat},
		{"mylocal", channels.MyLocal},
		{"creditCard", channels.CreditCard},
		{"deliveroo", channels.Deliveroo},
		{"uberEats", channels.UberEats},
	}
	for _, check := range checks {
		if err := validation.NonNegative(check.field, check.value); err != nil {
			return err
		}
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
