package store

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Load when nothing was ever saved to the slot.
var ErrSlotNotFound = errors.New("slot not found")

// Slot names, one per entity collection. Each holds a JSON array.
const (
	SlotTransactions  = "transactions"
	SlotDisbursements = "disbursements"
	SlotDeposits      = "fdr_dps"
	SlotAccounts      = "accounts"
	SlotChequeBooks   = "cheque_books"
	SlotDebitCards    = "debit_cards"
)

// Storage defines the key-value persistence boundary: named slots holding
// opaque JSON documents.
type Storage interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error

	Close() error
}
