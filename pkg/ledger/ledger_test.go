package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/store"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"github.com/shopspring/decimal"
)

// MockStore is a simple in-memory implementation of the Storage interface for testing.
type MockStore struct {
	slots   map[string][]byte
	saves   int
	failErr error
}

func NewMockStore() *MockStore {
	return &MockStore{slots: make(map[string][]byte)}
}

func (m *MockStore) Load(ctx context.Context, slot string) ([]byte, error) {
	data, ok := m.slots[slot]
	if !ok {
		return nil, store.ErrSlotNotFound
	}
	return data, nil
}

func (m *MockStore) Save(ctx context.Context, slot string, data []byte) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 45, 500, time.UTC)

func newTestLedger(s store.Storage) *Ledger {
	n := 0
	return NewLedger(s, []string{"Karim", "Nasrin"},
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func persisted[T any](t *testing.T, m *MockStore, slot string) []T {
	t.Helper()
	var items []T
	if err := json.Unmarshal(m.slots[slot], &items); err != nil {
		t.Fatalf("Failed to decode slot %s: %v", slot, err)
	}
	return items
}

func TestLoad_EmptySlotsAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)
	if err := l.Load(ctx); err != nil {
		t.Fatalf("Failed to load empty ledger: %v", err)
	}
	if l.Transactions.Len() != 0 {
		t.Errorf("Expected no transactions, got %d", l.Transactions.Len())
	}

	if _, err := l.RecordTransaction(ctx, models.Transaction{
		Type:   models.TransactionTypeCashDeposit,
		Amount: decimal.NewFromInt(500),
	}); err != nil {
		t.Fatalf("Failed to record transaction: %v", err)
	}

	reloaded := newTestLedger(ms)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Failed to reload ledger: %v", err)
	}
	if reloaded.Transactions.Len() != 1 {
		t.Errorf("Expected 1 transaction after reload, got %d", reloaded.Transactions.Len())
	}
}

func TestLoad_SeedFillsNeverSavedSlots(t *testing.T) {
	ms := NewMockStore()
	ms.slots[store.SlotAccounts] = []byte(`[]`)
	seed := Seed{
		Accounts:      []models.BankAccount{{ID: "seed-acct", AccountNumber: "1001"}},
		Disbursements: []models.Disbursement{{ID: "seed-d", LoanOfficer: "Karim"}},
	}
	l := NewLedger(ms, []string{"Karim"}, WithSeed(seed))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load ledger: %v", err)
	}
	if l.Disbursements.Len() != 1 {
		t.Errorf("Expected the seeded disbursement, got %d", l.Disbursements.Len())
	}
	if l.Accounts.Len() != 0 {
		t.Errorf("Expected a saved empty slot to win over the seed, got %d", l.Accounts.Len())
	}
	if ms.saves != 0 {
		t.Errorf("Expected seeding not to write, got %d saves", ms.saves)
	}
}

func TestReadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{"fdr_dps":[{"id":"f1","type":"FDR","openingDate":"2024-01-01"}],"cheque_books":[{"id":"c1","receivedDate":"2024-02-01","leafCount":10}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	seed, err := ReadSeed(path)
	if err != nil {
		t.Fatalf("Failed to read seed: %v", err)
	}
	if len(seed.Deposits) != 1 || seed.Deposits[0].Type != models.DepositTypeFDR {
		t.Errorf("Expected one FDR, got %+v", seed.Deposits)
	}
	if len(seed.ChequeBooks) != 1 || seed.ChequeBooks[0].LeafCount != 10 {
		t.Errorf("Expected one cheque book, got %+v", seed.ChequeBooks)
	}

	if _, err := ReadSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing seed file")
	}
}

func TestLoad_CorruptSlot(t *testing.T) {
	ms := NewMockStore()
	ms.slots[store.SlotAccounts] = []byte("{not json")
	if err := newTestLedger(ms).Load(context.Background()); err == nil {
		t.Error("Expected an error for a corrupt slot")
	}
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)

	tx, err := l.RecordTransaction(ctx, models.Transaction{
		Type:   models.TransactionTypeCashWithdrawal,
		Amount: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("Failed to record transaction: %v", err)
	}
	if tx.ID != "id-1" {
		t.Errorf("Expected id-1, got %s", tx.ID)
	}
	if tx.Status != models.TransactionStatusSuccess {
		t.Errorf("Expected default status Success, got %s", tx.Status)
	}
	if !tx.Timestamp.Equal(fixedNow.Truncate(time.Second)) {
		t.Errorf("Expected timestamp truncated to the second, got %s", tx.Timestamp)
	}

	stored := persisted[models.Transaction](t, ms, store.SlotTransactions)
	if len(stored) != 1 || stored[0].ID != "id-1" {
		t.Errorf("Expected transaction to be persisted, got %+v", stored)
	}

	_, err = l.RecordTransaction(ctx, models.Transaction{Type: "XX", Amount: decimal.NewFromInt(1)})
	var verrs validate.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation errors, got %v", err)
	}
	if verrs[0].Field != "type" {
		t.Errorf("Expected the type field to be rejected, got %s", verrs[0].Field)
	}
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMockStore())

	at := func(s string) time.Time {
		ts, _ := time.Parse(time.RFC3339, s)
		return ts
	}
	for _, tx := range []models.Transaction{
		{Type: models.TransactionTypeCashDeposit, Amount: decimal.NewFromInt(100), Timestamp: at("2024-03-15T09:00:00Z")},
		{Type: models.TransactionTypeCashWithdrawal, Amount: decimal.NewFromInt(40), Timestamp: at("2024-03-15T11:00:00Z")},
		{Type: models.TransactionTypeCashDeposit, Amount: decimal.NewFromInt(70), Timestamp: at("2024-03-14T16:00:00Z")},
	} {
		if _, err := l.RecordTransaction(ctx, tx); err != nil {
			t.Fatalf("Failed to record transaction: %v", err)
		}
	}

	day := l.ListTransactions("2024-03-15", "")
	if len(day) != 2 {
		t.Fatalf("Expected 2 transactions on 2024-03-15, got %d", len(day))
	}
	if day[0].Type != models.TransactionTypeCashWithdrawal {
		t.Errorf("Expected newest first, got %s", day[0].Type)
	}

	deposits := l.ListTransactions("", models.TransactionTypeCashDeposit)
	if len(deposits) != 2 {
		t.Errorf("Expected 2 cash deposits, got %d", len(deposits))
	}

	overview := l.Overview(models.MustParseDate("2024-03-15"), 7)
	if !overview.Today.NetPosition.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected net 60, got %s", overview.Today.NetPosition)
	}
	if !overview.Previous.TotalCashIn.Equal(decimal.NewFromInt(70)) {
		t.Errorf("Expected previous cash-in 70, got %s", overview.Previous.TotalCashIn)
	}
}

func TestTodayFollowsStoredTimestampsOutsideUTC(t *testing.T) {
	ctx := context.Background()
	dhaka := time.FixedZone("BDT", 6*60*60)
	now := time.Date(2024, time.May, 2, 3, 0, 0, 0, dhaka)
	l := NewLedger(NewMockStore(), []string{"Karim"}, WithClock(func() time.Time { return now }))

	tx, err := l.RecordTransaction(ctx, models.Transaction{
		Type:   models.TransactionTypeCashDeposit,
		Amount: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("Failed to record transaction: %v", err)
	}
	today := l.Today()
	if !strings.HasPrefix(tx.DateKey(), today.String()) {
		t.Errorf("Expected the transaction on today %s, got %s", today, tx.DateKey())
	}

	overview := l.Overview(models.Date{}, 7)
	if overview.Today.TransactionCount != 1 {
		t.Errorf("Expected 1 transaction today, got %d", overview.Today.TransactionCount)
	}
	if overview.Previous.TransactionCount != 0 {
		t.Errorf("Expected nothing yesterday, got %d", overview.Previous.TransactionCount)
	}
	if got := l.ListTransactions(today.String(), ""); len(got) != 1 {
		t.Errorf("Expected today's list to hold the transaction, got %d", len(got))
	}
}

func disbursement(officer, account string) models.Disbursement {
	return models.Disbursement{
		AccountTitle:       "Rahim Uddin",
		AccountNumber:      account,
		LoanAmount:         decimal.NewFromInt(50000),
		DisbursementAmount: decimal.NewFromInt(45000),
		LoanOfficer:        officer,
		Date:               models.MustParseDate("2024-03-15"),
	}
}

func TestDisbursementLifecycle(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)

	d, err := l.CreateDisbursement(ctx, disbursement("Karim", "1001"))
	if err != nil {
		t.Fatalf("Failed to create disbursement: %v", err)
	}
	if _, err := l.CreateDisbursement(ctx, disbursement("Someone Else", "1002")); err != nil {
		t.Fatalf("Failed to create disbursement: %v", err)
	}

	groups := l.DisbursementGroups(collection.Query{Date: "2024-03-15", Officer: collection.AllOfficers})
	if len(groups) != 3 {
		t.Fatalf("Expected Karim, Nasrin and Other Officers groups, got %d", len(groups))
	}
	if groups[1].Officer != "Nasrin" || len(groups[1].Items) != 0 {
		t.Errorf("Expected an empty Nasrin group, got %+v", groups[1])
	}
	if groups[2].Officer != collection.OtherOfficers {
		t.Errorf("Expected catch-all group last, got %s", groups[2].Officer)
	}

	edited := d
	edited.DisbursementAmount = decimal.NewFromInt(40000)
	if _, err := l.UpdateDisbursement(ctx, d.ID, edited); err != nil {
		t.Fatalf("Failed to update disbursement: %v", err)
	}
	got, _ := l.Disbursements.Get(d.ID)
	if !got.DisbursementAmount.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Expected updated amount 40000, got %s", got.DisbursementAmount)
	}

	if _, err := l.UpdateDisbursement(ctx, "missing", edited); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	bad := disbursement("Karim", "1003")
	bad.AccountTitle = "R2D2"
	if _, err := l.CreateDisbursement(ctx, bad); err == nil {
		t.Error("Expected a title with digits to be rejected")
	}

	if err := l.DeleteDisbursement(ctx, d.ID); err != nil {
		t.Fatalf("Failed to delete disbursement: %v", err)
	}
	if err := l.DeleteDisbursement(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
	if stored := persisted[models.Disbursement](t, ms, store.SlotDisbursements); len(stored) != 1 {
		t.Errorf("Expected 1 persisted disbursement, got %d", len(stored))
	}
}

func TestFailedSaveLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)

	ms.failErr = errors.New("disk full")
	if _, err := l.CreateDisbursement(ctx, disbursement("Karim", "1001")); err == nil {
		t.Fatal("Expected the storage error to surface")
	}
	if l.Disbursements.Len() != 0 {
		t.Errorf("Expected no disbursements after a failed save, got %d", l.Disbursements.Len())
	}
}

func dps(opening string, tenor int) models.FdrDps {
	return models.FdrDps{
		AccountTitle:      "Salma Begum",
		AccountNumber:     "2001",
		Type:              models.DepositTypeDPS,
		AccountCategory:   models.AccountCategoryRetail,
		ProductName:       "Monthly Saver",
		Tenor:             tenor,
		InstallmentAmount: decimal.NewFromInt(1000),
		OpeningDate:       models.MustParseDate(opening),
		LoanOfficer:       "Nasrin",
	}
}

func TestOpenAndUpdateDeposit(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMockStore())

	f, err := l.OpenDeposit(ctx, dps("2024-01-31", 12))
	if err != nil {
		t.Fatalf("Failed to open deposit: %v", err)
	}
	if f.MaturityDate.String() != "2025-01-31" {
		t.Errorf("Expected maturity 2025-01-31, got %s", f.MaturityDate)
	}
	if !f.PrincipalAmount.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("Expected principal 12000, got %s", f.PrincipalAmount)
	}
	if !f.InterestRate.Equal(decimal.RequireFromString("8.5")) {
		t.Errorf("Expected rate 8.5, got %s", f.InterestRate)
	}
	if f.Status != models.DepositStatusActive {
		t.Errorf("Expected Active, got %s", f.Status)
	}

	edited := f
	edited.Tenor = 60
	edited.PrincipalAmount = decimal.NewFromInt(1)
	updated, err := l.UpdateDeposit(ctx, f.ID, edited)
	if err != nil {
		t.Fatalf("Failed to update deposit: %v", err)
	}
	if !updated.PrincipalAmount.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("Expected principal recomputed to 60000, got %s", updated.PrincipalAmount)
	}
	if !updated.InterestRate.Equal(decimal.RequireFromString("9")) {
		t.Errorf("Expected rate 9.0, got %s", updated.InterestRate)
	}

	if got := l.ListDeposits(collection.Query{Field: models.SearchTitle, Text: "salma"}, models.DepositTypeFDR); len(got) != 0 {
		t.Errorf("Expected no FDR matches, got %d", len(got))
	}
	if got := l.ListDeposits(collection.Query{Field: models.SearchTitle, Text: "salma"}, ""); len(got) != 1 {
		t.Errorf("Expected 1 match, got %d", len(got))
	}
}

func TestListDepositsAndAccountsByOfficer(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMockStore())

	for _, officer := range []string{"Karim", "Nasrin"} {
		f := dps("2024-01-31", 12)
		f.Type = models.DepositTypeFDR
		f.PrincipalAmount = decimal.NewFromInt(100000)
		f.LoanOfficer = officer
		if _, err := l.OpenDeposit(ctx, f); err != nil {
			t.Fatalf("Failed to open deposit: %v", err)
		}
		if _, err := l.CreateAccount(ctx, models.BankAccount{
			AccountTitle:  "Salma Begum",
			AccountNumber: "2001",
			Category:      models.AccountCategoryRetail,
			CreateDate:    models.MustParseDate("2024-01-10"),
			LoanOfficer:   officer,
		}); err != nil {
			t.Fatalf("Failed to create account: %v", err)
		}
	}

	deposits := l.ListDeposits(collection.Query{Officer: "Karim"}, "")
	if len(deposits) != 1 || deposits[0].LoanOfficer != "Karim" {
		t.Errorf("Expected only Karim's deposit, got %+v", deposits)
	}
	if got := l.ListDeposits(collection.Query{Officer: "Karim"}, models.DepositTypeDPS); len(got) != 0 {
		t.Errorf("Expected no DPS for Karim, got %d", len(got))
	}
	if got := l.ListDeposits(collection.Query{Officer: collection.AllOfficers}, ""); len(got) != 2 {
		t.Errorf("Expected every deposit without an officer filter, got %d", len(got))
	}

	accounts := l.ListAccounts(collection.Query{Officer: "Nasrin"})
	if len(accounts) != 1 || accounts[0].LoanOfficer != "Nasrin" {
		t.Errorf("Expected only Nasrin's account, got %+v", accounts)
	}
	if got := l.ListAccounts(collection.Query{Officer: "Nobody"}); len(got) != 0 {
		t.Errorf("Expected no accounts for an unknown officer, got %d", len(got))
	}
}

func TestRefreshMaturity(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)

	short, _ := l.OpenDeposit(ctx, dps("2023-01-01", 12))
	long, _ := l.OpenDeposit(ctx, dps("2024-01-01", 12))
	if short.Status != models.DepositStatusMatured {
		t.Errorf("Expected a deposit that matured before today to open as Matured, got %s", short.Status)
	}

	// Force the stored status back to Active to exercise the refresh.
	if _, err := l.Deposits.Modify(ctx, func(f *models.FdrDps) bool {
		f.Status = models.DepositStatusActive
		return true
	}); err != nil {
		t.Fatalf("Failed to reset statuses: %v", err)
	}

	changed, err := l.RefreshMaturity(ctx, models.MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("Failed to refresh maturity: %v", err)
	}
	if changed != 1 {
		t.Errorf("Expected 1 deposit to mature, got %d", changed)
	}
	got, _ := l.Deposits.Get(long.ID)
	if got.Status != models.DepositStatusActive {
		t.Errorf("Expected the 2025 deposit to stay Active, got %s", got.Status)
	}

	saves := ms.saves
	if changed, _ := l.RefreshMaturity(ctx, models.MustParseDate("2024-06-01")); changed != 0 {
		t.Errorf("Expected a second refresh to change nothing, got %d", changed)
	}
	if ms.saves != saves {
		t.Error("Expected no save when nothing changed")
	}
}

func TestDeleteAccountKeepsLinkedRecords(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMockStore())

	acct, err := l.CreateAccount(ctx, models.BankAccount{
		AccountTitle:  "Rahim Uddin",
		AccountNumber: "1001",
		MobileNumber:  "01712345678",
		Category:      models.AccountCategoryFarmer,
		CreateDate:    models.MustParseDate("2024-01-10"),
		LoanOfficer:   "Karim",
	})
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	if _, err := l.CreateDisbursement(ctx, disbursement("Karim", "1001")); err != nil {
		t.Fatalf("Failed to create disbursement: %v", err)
	}
	cb := models.ChequeBook{Instrument: models.Instrument{
		AccountTitle:  "Rahim Uddin",
		AccountNumber: "1001",
		LoanOfficer:   "Karim",
		ReceivedDate:  models.MustParseDate("2024-03-01"),
	}, LeafCount: 10}
	if _, err := l.ReceiveChequeBook(ctx, cb); err != nil {
		t.Fatalf("Failed to receive cheque book: %v", err)
	}

	links := l.AccountLinks("1001")
	if links.Account == nil || links.Account.ID != acct.ID {
		t.Fatalf("Expected the account in its links, got %+v", links.Account)
	}
	if len(links.Disbursements) != 1 || len(links.ChequeBooks) != 1 {
		t.Errorf("Expected 1 disbursement and 1 cheque book, got %d and %d", len(links.Disbursements), len(links.ChequeBooks))
	}

	if got := l.ListAccounts(collection.Query{Field: models.SearchMobileNumber, Text: "0171"}); len(got) != 1 {
		t.Errorf("Expected mobile search to find the account, got %d", len(got))
	}

	if err := l.DeleteAccount(ctx, acct.ID); err != nil {
		t.Fatalf("Failed to delete account: %v", err)
	}
	links = l.AccountLinks("1001")
	if links.Account != nil {
		t.Error("Expected no account after delete")
	}
	if len(links.Disbursements) != 1 || len(links.ChequeBooks) != 1 {
		t.Error("Expected linked records to survive the account delete")
	}
	if l.AccountLinks("9999").DebitCards == nil {
		t.Error("Expected empty, non-nil slices for an unknown number")
	}
}

func TestInventoryDelivery(t *testing.T) {
	ctx := context.Background()
	ms := NewMockStore()
	l := newTestLedger(ms)

	card := func(officer string) models.DebitCard {
		return models.DebitCard{Instrument: models.Instrument{
			AccountTitle:  "Salma Begum",
			AccountNumber: "2001",
			LoanOfficer:   officer,
			ReceivedDate:  models.MustParseDate("2024-03-01"),
			Status:        models.InventoryStatusSubmitted,
		}, CardType: "VISA"}
	}

	first, err := l.ReceiveDebitCard(ctx, card("Karim"))
	if err != nil {
		t.Fatalf("Failed to receive debit card: %v", err)
	}
	if first.Status != models.InventoryStatusPending {
		t.Errorf("Expected Pending without a delivery date, got %s", first.Status)
	}
	if _, err := l.ReceiveDebitCard(ctx, card("Karim")); err != nil {
		t.Fatalf("Failed to receive debit card: %v", err)
	}
	if _, err := l.ReceiveDebitCard(ctx, card("Nasrin")); err != nil {
		t.Fatalf("Failed to receive debit card: %v", err)
	}

	delivered, err := l.DeliverDebitCard(ctx, first.ID, models.Date{})
	if err != nil {
		t.Fatalf("Failed to deliver debit card: %v", err)
	}
	if delivered.Status != models.InventoryStatusSubmitted {
		t.Errorf("Expected Submitted, got %s", delivered.Status)
	}
	if delivered.DeliveryDate == nil || delivered.DeliveryDate.String() != "2024-03-15" {
		t.Errorf("Expected delivery today, got %v", delivered.DeliveryDate)
	}
	stored := persisted[models.DebitCard](t, ms, store.SlotDebitCards)
	if stored[0].Status != models.InventoryStatusSubmitted {
		t.Errorf("Expected persisted status Submitted, got %s", stored[0].Status)
	}

	view := l.DebitCardInventory(collection.Query{Officer: "Karim", Status: string(models.InventoryStatusPending)})
	if len(view.Items) != 1 {
		t.Errorf("Expected 1 pending card for Karim, got %d", len(view.Items))
	}
	if view.Tally != (collection.Tally{Total: 2, Pending: 1, Submitted: 1}) {
		t.Errorf("Expected tally over Karim's cards, got %+v", view.Tally)
	}

	if _, err := l.DeliverDebitCard(ctx, "missing", models.Date{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := l.DeleteDebitCard(ctx, first.ID); err != nil {
		t.Fatalf("Failed to delete debit card: %v", err)
	}
	if l.DebitCards.Len() != 2 {
		t.Errorf("Expected 2 cards after delete, got %d", l.DebitCards.Len())
	}
}

func TestChequeBookInventory(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMockStore())

	on := models.MustParseDate("2024-03-10")
	cb, err := l.ReceiveChequeBook(ctx, models.ChequeBook{Instrument: models.Instrument{
		AccountTitle:  "Rahim Uddin",
		AccountNumber: "1001",
		ReceivedDate:  models.MustParseDate("2024-03-01"),
		DeliveryDate:  &on,
	}, LeafCount: 25, SerialFrom: "A0001", SerialTo: "A0025"})
	if err != nil {
		t.Fatalf("Failed to receive cheque book: %v", err)
	}
	if cb.Status != models.InventoryStatusSubmitted {
		t.Errorf("Expected a book received with a delivery date to be Submitted, got %s", cb.Status)
	}

	delivered, err := l.DeliverChequeBook(ctx, cb.ID, models.MustParseDate("2024-03-12"))
	if err != nil {
		t.Fatalf("Failed to deliver cheque book: %v", err)
	}
	if delivered.DeliveryDate.String() != "2024-03-12" {
		t.Errorf("Expected delivery date 2024-03-12, got %s", delivered.DeliveryDate)
	}

	view := l.ChequeBookInventory(collection.Query{Officer: collection.AllOfficers, Status: collection.AllStatuses})
	if view.Tally.Submitted != 1 || len(view.Items) != 1 {
		t.Errorf("Expected 1 submitted book, got %+v", view.Tally)
	}
	if err := l.DeleteChequeBook(ctx, cb.ID); err != nil {
		t.Fatalf("Failed to delete cheque book: %v", err)
	}
}
