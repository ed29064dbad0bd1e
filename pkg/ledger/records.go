package ledger

import (
	"context"
	"fmt"

	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/deposit"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"go.uber.org/zap"
)

func (l *Ledger) CreateDisbursement(ctx context.Context, d models.Disbursement) (models.Disbursement, error) {
	if err := validate.Struct(d); err != nil {
		return models.Disbursement{}, err
	}
	d.ID = l.newID()
	if err := l.Disbursements.Add(ctx, d); err != nil {
		return models.Disbursement{}, fmt.Errorf("failed to create disbursement: %w", err)
	}
	logger.Info("disbursement created", zap.String("id", d.ID), zap.String("officer", d.LoanOfficer))
	return d, nil
}

func (l *Ledger) UpdateDisbursement(ctx context.Context, id string, d models.Disbursement) (models.Disbursement, error) {
	d.ID = id
	if err := validate.Struct(d); err != nil {
		return models.Disbursement{}, err
	}
	if err := l.Disbursements.Update(ctx, d); err != nil {
		return models.Disbursement{}, err
	}
	return d, nil
}

func (l *Ledger) DeleteDisbursement(ctx context.Context, id string) error {
	return l.Disbursements.Delete(ctx, id)
}

// DisbursementGroups selects disbursements with q and groups them by officer.
func (l *Ledger) DisbursementGroups(q collection.Query) []collection.Group[models.Disbursement] {
	return collection.GroupByOfficer(l.Disbursements.All(), l.roster, q)
}

// OpenDeposit derives the maturity date, rate and (DPS) principal before
// storing, and sets the status as of today.
func (l *Ledger) OpenDeposit(ctx context.Context, f models.FdrDps) (models.FdrDps, error) {
	if err := validate.Struct(f); err != nil {
		return models.FdrDps{}, err
	}
	f.ID = l.newID()
	deposit.Apply(&f)
	f.Status = deposit.StatusAt(f, l.Today())
	if err := l.Deposits.Add(ctx, f); err != nil {
		return models.FdrDps{}, fmt.Errorf("failed to open deposit: %w", err)
	}
	logger.Info("deposit opened",
		zap.String("id", f.ID),
		zap.String("type", string(f.Type)),
		zap.String("maturityDate", f.MaturityDate.String()),
	)
	return f, nil
}

// UpdateDeposit recomputes every derived field from the edited inputs.
func (l *Ledger) UpdateDeposit(ctx context.Context, id string, f models.FdrDps) (models.FdrDps, error) {
	f.ID = id
	if err := validate.Struct(f); err != nil {
		return models.FdrDps{}, err
	}
	deposit.Apply(&f)
	f.Status = deposit.StatusAt(f, l.Today())
	if err := l.Deposits.Update(ctx, f); err != nil {
		return models.FdrDps{}, err
	}
	return f, nil
}

func (l *Ledger) DeleteDeposit(ctx context.Context, id string) error {
	return l.Deposits.Delete(ctx, id)
}

// ListDeposits selects deposits with q, optionally of one type.
func (l *Ledger) ListDeposits(q collection.Query, typ models.DepositType) []models.FdrDps {
	preds := []collection.Predicate[models.FdrDps]{collection.MatchOfficer[models.FdrDps](q.Officer)}
	if typ != "" {
		preds = append(preds, func(f models.FdrDps) bool { return f.Type == typ })
	}
	return collection.Filter(collection.Select(l.Deposits.All(), q), preds...)
}

// RefreshMaturity flips deposits whose maturity date has passed by asOf to
// Matured and returns how many changed.
func (l *Ledger) RefreshMaturity(ctx context.Context, asOf models.Date) (int, error) {
	changed, err := l.Deposits.Modify(ctx, func(f *models.FdrDps) bool {
		status := deposit.StatusAt(*f, asOf)
		if status == f.Status {
			return false
		}
		f.Status = status
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("failed to refresh maturity: %w", err)
	}
	if changed > 0 {
		logger.Info("deposit maturity refreshed", zap.String("asOf", asOf.String()), zap.Int("changed", changed))
	}
	return changed, nil
}

func (l *Ledger) CreateAccount(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	if err := validate.Struct(a); err != nil {
		return models.BankAccount{}, err
	}
	a.ID = l.newID()
	if err := l.Accounts.Add(ctx, a); err != nil {
		return models.BankAccount{}, fmt.Errorf("failed to create account: %w", err)
	}
	logger.Info("account created", zap.String("id", a.ID), zap.String("accountNumber", a.AccountNumber))
	return a, nil
}

func (l *Ledger) UpdateAccount(ctx context.Context, id string, a models.BankAccount) (models.BankAccount, error) {
	a.ID = id
	if err := validate.Struct(a); err != nil {
		return models.BankAccount{}, err
	}
	if err := l.Accounts.Update(ctx, a); err != nil {
		return models.BankAccount{}, err
	}
	return a, nil
}

// DeleteAccount removes the account only. Records that point at its number
// stay where they are.
func (l *Ledger) DeleteAccount(ctx context.Context, id string) error {
	return l.Accounts.Delete(ctx, id)
}

func (l *Ledger) ListAccounts(q collection.Query) []models.BankAccount {
	return collection.Filter(collection.Select(l.Accounts.All(), q), collection.MatchOfficer[models.BankAccount](q.Officer))
}

// Links gathers everything that refers to one account number. Account is nil
// when no account carries the number, which happens after a delete.
type Links struct {
	AccountNumber string                `json:"accountNumber"`
	Account       *models.BankAccount   `json:"account"`
	Disbursements []models.Disbursement `json:"disbursements"`
	Deposits      []models.FdrDps       `json:"deposits"`
	ChequeBooks   []models.ChequeBook   `json:"chequeBooks"`
	DebitCards    []models.DebitCard    `json:"debitCards"`
}

func (l *Ledger) AccountLinks(number string) Links {
	links := Links{
		AccountNumber: number,
		Disbursements: linked(l.Disbursements.All(), number, func(d models.Disbursement) string { return d.AccountNumber }),
		Deposits:      linked(l.Deposits.All(), number, func(f models.FdrDps) string { return f.AccountNumber }),
		ChequeBooks:   linked(l.ChequeBooks.All(), number, func(c models.ChequeBook) string { return c.AccountNumber }),
		DebitCards:    linked(l.DebitCards.All(), number, func(c models.DebitCard) string { return c.AccountNumber }),
	}
	if accounts := linked(l.Accounts.All(), number, func(a models.BankAccount) string { return a.AccountNumber }); len(accounts) > 0 {
		links.Account = &accounts[0]
	}
	return links
}

func linked[T any](items []T, number string, key func(T) string) []T {
	byNumber := collection.GroupBy(items, key)
	if found := byNumber[number]; found != nil {
		return found
	}
	return []T{}
}
