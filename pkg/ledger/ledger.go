package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/store"
	"github.com/mcclellann/branchdesk/pkg/summary"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"go.uber.org/zap"
)

// Ledger owns one Collection per slot and applies the branch's business
// rules on every mutation.
type Ledger struct {
	roster []string
	now    func() time.Time
	newID  func() string
	seed   Seed

	Transactions  *Collection[models.Transaction]
	Disbursements *Collection[models.Disbursement]
	Deposits      *Collection[models.FdrDps]
	Accounts      *Collection[models.BankAccount]
	ChequeBooks   *Collection[models.ChequeBook]
	DebitCards    *Collection[models.DebitCard]
}

type Option func(*Ledger)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs replaces the uuid generator, mainly for tests.
func WithIDs(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// NewLedger creates a new Ledger with a given Storage implementation and the
// officer roster in display order.
func NewLedger(s store.Storage, roster []string, opts ...Option) *Ledger {
	l := &Ledger{
		roster:        append([]string(nil), roster...),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
		Transactions:  NewCollection[models.Transaction](s, store.SlotTransactions),
		Disbursements: NewCollection[models.Disbursement](s, store.SlotDisbursements),
		Deposits:      NewCollection[models.FdrDps](s, store.SlotDeposits),
		Accounts:      NewCollection[models.BankAccount](s, store.SlotAccounts),
		ChequeBooks:   NewCollection[models.ChequeBook](s, store.SlotChequeBooks),
		DebitCards:    NewCollection[models.DebitCard](s, store.SlotDebitCards),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every slot. Slots that were never saved start from the seed.
func (l *Ledger) Load(ctx context.Context) error {
	loaders := []func(context.Context) error{
		func(ctx context.Context) error { return l.Transactions.Load(ctx, l.seed.Transactions) },
		func(ctx context.Context) error { return l.Disbursements.Load(ctx, l.seed.Disbursements) },
		func(ctx context.Context) error { return l.Deposits.Load(ctx, l.seed.Deposits) },
		func(ctx context.Context) error { return l.Accounts.Load(ctx, l.seed.Accounts) },
		func(ctx context.Context) error { return l.ChequeBooks.Load(ctx, l.seed.ChequeBooks) },
		func(ctx context.Context) error { return l.DebitCards.Load(ctx, l.seed.DebitCards) },
	}
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			return err
		}
	}
	logger.Info("ledger loaded",
		zap.Int("transactions", l.Transactions.Len()),
		zap.Int("disbursements", l.Disbursements.Len()),
		zap.Int("deposits", l.Deposits.Len()),
		zap.Int("accounts", l.Accounts.Len()),
		zap.Int("chequeBooks", l.ChequeBooks.Len()),
		zap.Int("debitCards", l.DebitCards.Len()),
	)
	return nil
}

// Roster returns the officer roster in display order.
func (l *Ledger) Roster() []string {
	return append([]string(nil), l.roster...)
}

// Today is the current calendar day in UTC, the zone transaction timestamps
// are stored in.
func (l *Ledger) Today() models.Date {
	return models.DateOf(l.now().UTC())
}

// RecordTransaction stores a new ledger entry. Transactions are immutable
// once recorded. A missing timestamp means now and a missing status means
// Success.
func (l *Ledger) RecordTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.Status == "" {
		tx.Status = models.TransactionStatusSuccess
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = l.now()
	}
	tx.Timestamp = tx.Timestamp.UTC().Truncate(time.Second)
	if err := validate.Struct(tx); err != nil {
		return models.Transaction{}, err
	}
	tx.ID = l.newID()

	if err := l.Transactions.Add(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}
	logger.Info("transaction recorded",
		zap.String("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
	)
	return tx, nil
}

// ListTransactions returns transactions whose timestamp starts with
// datePrefix, optionally of one type, newest first.
func (l *Ledger) ListTransactions(datePrefix string, typ models.TransactionType) []models.Transaction {
	preds := []collection.Predicate[models.Transaction]{collection.MatchDate[models.Transaction](datePrefix)}
	if typ != "" {
		preds = append(preds, func(tx models.Transaction) bool { return tx.Type == typ })
	}
	txs := collection.Filter(l.Transactions.All(), preds...)
	slices.SortStableFunc(txs, func(a, b models.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return txs
}

// Overview summarizes day against the day before and the preceding window.
func (l *Ledger) Overview(day models.Date, window int) summary.Overview {
	if day.IsZero() {
		day = l.Today()
	}
	return summary.Build(l.Transactions.All(), day, window)
}
