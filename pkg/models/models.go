package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCashDeposit      TransactionType = "CD"
	TransactionTypeLoanRecovery     TransactionType = "LR"
	TransactionTypeInwardDeposit    TransactionType = "ID"
	TransactionTypeBillCollection   TransactionType = "BC"
	TransactionTypeCashWithdrawal   TransactionType = "CW"
	TransactionTypeLoanDisbursement TransactionType = "LD"
)

// IsCashIn reports whether money of this type flows into the branch.
// Every type outside the cash-in set counts as cash-out.
func (t TransactionType) IsCashIn() bool {
	switch t {
	case TransactionTypeCashDeposit, TransactionTypeLoanRecovery, TransactionTypeInwardDeposit, TransactionTypeBillCollection:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "Success"
	TransactionStatusPending TransactionStatus = "Pending"
	TransactionStatusFailed  TransactionStatus = "Failed"
)

type Transaction struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Type      TransactionType   `json:"type" validate:"required,oneof=CD LR ID BC CW LD"`
	Amount    decimal.Decimal   `json:"amount" validate:"gte=0"`
	Status    TransactionStatus `json:"status" validate:"required,oneof=Success Pending Failed"`
}

func (t Transaction) EntityID() string { return t.ID }

// DateKey is the second-precision ISO timestamp used for date-prefix filters.
func (t Transaction) DateKey() string { return t.Timestamp.Format("2006-01-02T15:04:05") }

type Disbursement struct {
	ID                 string          `json:"id"`
	AccountTitle       string          `json:"accountTitle" validate:"required,nodigits"`
	AccountNumber      string          `json:"accountNumber" validate:"required"`
	MobileNumber       string          `json:"mobileNumber" validate:"omitempty,number,len=11"`
	LoanAmount         decimal.Decimal `json:"loanAmount" validate:"gte=0"`
	DisbursementAmount decimal.Decimal `json:"disbursementAmount" validate:"gte=0"`
	LoanOfficer        string          `json:"loanOfficer" validate:"required"`
	Date               Date            `json:"date" validate:"required"`
}

func (d Disbursement) EntityID() string    { return d.ID }
func (d Disbursement) DateKey() string     { return d.Date.String() }
func (d Disbursement) OfficerName() string { return d.LoanOfficer }

func (d Disbursement) SearchValue(field SearchField) string {
	return searchValue(field, d.AccountNumber, d.MobileNumber, d.AccountTitle)
}

type DepositType string

const (
	DepositTypeFDR DepositType = "FDR"
	DepositTypeDPS DepositType = "DPS"
)

type AccountCategory string

const (
	AccountCategoryRetail  AccountCategory = "Retail"
	AccountCategoryCurrent AccountCategory = "Current"
	AccountCategoryStudent AccountCategory = "Student"
	AccountCategoryFarmer  AccountCategory = "Farmer"
)

type DepositStatus string

const (
	DepositStatusActive  DepositStatus = "Active"
	DepositStatusMatured DepositStatus = "Matured"
)

// FdrDps is a fixed (FDR) or recurring (DPS) deposit. MaturityDate, InterestRate
// and, for DPS, PrincipalAmount are derived; see package deposit.
type FdrDps struct {
	ID                string          `json:"id"`
	AccountTitle      string          `json:"accountTitle" validate:"required,nodigits"`
	AccountNumber     string          `json:"accountNumber" validate:"required"`
	MobileNumber      string          `json:"mobileNumber" validate:"omitempty,number,len=11"`
	Type              DepositType     `json:"type" validate:"required,oneof=FDR DPS"`
	AccountCategory   AccountCategory `json:"accountCategory" validate:"required,oneof=Retail Current"`
	ProductName       string          `json:"productName" validate:"required"`
	Tenor             int             `json:"tenor" validate:"min=1,max=240"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount" validate:"gte=0"`
	OpeningDate       Date            `json:"openingDate" validate:"required"`
	MaturityDate      Date            `json:"maturityDate"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount" validate:"gte=0"`
	MaturityAmount    decimal.Decimal `json:"maturityAmount" validate:"gte=0"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	Status            DepositStatus   `json:"status" validate:"omitempty,oneof=Active Matured"`
	LoanOfficer       string          `json:"loanOfficer"`
}

func (f FdrDps) EntityID() string    { return f.ID }
func (f FdrDps) DateKey() string     { return f.OpeningDate.String() }
func (f FdrDps) OfficerName() string { return f.LoanOfficer }

func (f FdrDps) SearchValue(field SearchField) string {
	return searchValue(field, f.AccountNumber, f.MobileNumber, f.AccountTitle)
}

// BankAccount is the anchor other records point at by AccountNumber. The
// link is lookup-only: nothing cascades when an account goes away.
type BankAccount struct {
	ID            string          `json:"id"`
	AccountTitle  string          `json:"accountTitle" validate:"required,nodigits"`
	AccountNumber string          `json:"accountNumber" validate:"required"`
	MobileNumber  string          `json:"mobileNumber" validate:"omitempty,number,len=11"`
	Category      AccountCategory `json:"category" validate:"required,oneof=Retail Current Student Farmer"`
	SubCategory   string          `json:"subCategory"`
	CreateDate    Date            `json:"createDate" validate:"required"`
	LoanOfficer   string          `json:"loanOfficer"`
}

func (a BankAccount) EntityID() string    { return a.ID }
func (a BankAccount) DateKey() string     { return a.CreateDate.String() }
func (a BankAccount) OfficerName() string { return a.LoanOfficer }

func (a BankAccount) SearchValue(field SearchField) string {
	return searchValue(field, a.AccountNumber, a.MobileNumber, a.AccountTitle)
}

type InventoryStatus string

const (
	InventoryStatusPending   InventoryStatus = "Pending"
	InventoryStatusSubmitted InventoryStatus = "Submitted"
)

// Instrument holds the fields shared by physical inventory items tracked from
// receipt at the branch to delivery to the customer.
type Instrument struct {
	ID            string          `json:"id"`
	AccountTitle  string          `json:"accountTitle" validate:"required,nodigits"`
	AccountNumber string          `json:"accountNumber" validate:"required"`
	MobileNumber  string          `json:"mobileNumber" validate:"omitempty,number,len=11"`
	LoanOfficer   string          `json:"loanOfficer"`
	ReceivedDate  Date            `json:"receivedDate" validate:"required"`
	DeliveryDate  *Date           `json:"deliveryDate,omitempty"`
	Status        InventoryStatus `json:"status" validate:"omitempty,oneof=Pending Submitted"`
}

func (i Instrument) EntityID() string                { return i.ID }
func (i Instrument) DateKey() string                 { return i.ReceivedDate.String() }
func (i Instrument) OfficerName() string             { return i.LoanOfficer }
func (i Instrument) InventoryState() InventoryStatus { return i.Status }
func (i Instrument) Delivered() bool                 { return i.DeliveryDate != nil && !i.DeliveryDate.IsZero() }

func (i Instrument) SearchValue(field SearchField) string {
	return searchValue(field, i.AccountNumber, i.MobileNumber, i.AccountTitle)
}

// Base gives generic code access to the shared fields of ChequeBook and
// DebitCard.
func (i *Instrument) Base() *Instrument { return i }

// Deliver records the hand-over to the customer.
func (i *Instrument) Deliver(on Date) {
	i.DeliveryDate = &on
	i.Status = InventoryStatusSubmitted
}

// SyncStatus derives Status from DeliveryDate.
func (i *Instrument) SyncStatus() {
	if i.Delivered() {
		i.Status = InventoryStatusSubmitted
		return
	}
	i.DeliveryDate = nil
	i.Status = InventoryStatusPending
}

type ChequeBook struct {
	Instrument
	LeafCount  int    `json:"leafCount" validate:"omitempty,min=1"`
	SerialFrom string `json:"serialFrom,omitempty"`
	SerialTo   string `json:"serialTo,omitempty"`
}

type DebitCard struct {
	Instrument
	CardNumber string `json:"cardNumber,omitempty"`
	CardType   string `json:"cardType,omitempty"`
}

// DailySummary is computed per request and never persisted.
type DailySummary struct {
	TotalCashIn      decimal.Decimal `json:"totalCashIn"`
	TotalCashOut     decimal.Decimal `json:"totalCashOut"`
	NetPosition      decimal.Decimal `json:"netPosition"`
	TransactionCount int             `json:"transactionCount"`
}

// SearchField names the single field a text search runs against.
type SearchField string

const (
	SearchAccountNumber SearchField = "accountNumber"
	SearchMobileNumber  SearchField = "mobileNumber"
	SearchTitle         SearchField = "accountTitle"
)

// ParseSearchField maps a query value onto a SearchField, defaulting to the
// account number.
func ParseSearchField(s string) SearchField {
	switch SearchField(strings.TrimSpace(s)) {
	case SearchMobileNumber:
		return SearchMobileNumber
	case SearchTitle:
		return SearchTitle
	}
	return SearchAccountNumber
}

func searchValue(field SearchField, accountNumber, mobileNumber, title string) string {
	switch field {
	case SearchAccountNumber:
		return accountNumber
	case SearchMobileNumber:
		return mobileNumber
	case SearchTitle:
		return title
	}
	return ""
}
