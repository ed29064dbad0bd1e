package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcclellann/branchdesk/pkg/models"
)

// Seed holds the records a slot starts with when storage has never seen it.
// Keys match the slot names.
type Seed struct {
	Transactions  []models.Transaction  `json:"transactions"`
	Disbursements []models.Disbursement `json:"disbursements"`
	Deposits      []models.FdrDps       `json:"fdr_dps"`
	Accounts      []models.BankAccount  `json:"accounts"`
	ChequeBooks   []models.ChequeBook   `json:"cheque_books"`
	DebitCards    []models.DebitCard    `json:"debit_cards"`
}

// WithSeed sets the default collections used for slots that were never saved.
func WithSeed(seed Seed) Option {
	return func(l *Ledger) { l.seed = seed }
}

// ReadSeed decodes a JSON seed file.
func ReadSeed(path string) (Seed, error) {
	// #nosec G304: the path comes from the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return seed, nil
}
