// Package export renders list views as CSV, JSON or PDF documents.
package export

import (
	"strconv"

	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/currency"
	"github.com/mcclellann/branchdesk/pkg/models"
)

// Table is a rendered list view: display-ready strings in column order.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func Transactions(txs []models.Transaction, f currency.Formatter) Table {
	t := Table{
		Title:   "Transactions",
		Columns: []string{"ID", "Timestamp", "Type", "Direction", "Amount", "Status"},
	}
	for _, tx := range txs {
		direction := "Cash Out"
		if tx.Type.IsCashIn() {
			direction = "Cash In"
		}
		t.Rows = append(t.Rows, []string{
			tx.ID, tx.DateKey(), string(tx.Type), direction, f.Format(tx.Amount), string(tx.Status),
		})
	}
	return t
}

// Disbursements flattens officer groups; empty groups produce no rows.
func Disbursements(groups []collection.Group[models.Disbursement], f currency.Formatter) Table {
	t := Table{
		Title:   "Loan Disbursements",
		Columns: []string{"Officer", "Date", "Account Number", "Account Title", "Mobile", "Loan Amount", "Disbursed"},
	}
	for _, g := range groups {
		for _, d := range g.Items {
			t.Rows = append(t.Rows, []string{
				g.Officer, d.Date.String(), d.AccountNumber, d.AccountTitle, d.MobileNumber,
				f.Format(d.LoanAmount), f.Format(d.DisbursementAmount),
			})
		}
	}
	return t
}

func Deposits(deposits []models.FdrDps, f currency.Formatter) Table {
	t := Table{
		Title: "FDR / DPS",
		Columns: []string{
			"Type", "Account Number", "Account Title", "Product", "Tenor", "Opened", "Matures",
			"Rate", "Principal", "Maturity Amount", "Status", "Officer",
		},
	}
	for _, d := range deposits {
		t.Rows = append(t.Rows, []string{
			string(d.Type), d.AccountNumber, d.AccountTitle, d.ProductName, strconv.Itoa(d.Tenor),
			d.OpeningDate.String(), d.MaturityDate.String(), d.InterestRate.StringFixed(2) + "%",
			f.Format(d.PrincipalAmount), f.Format(d.MaturityAmount), string(d.Status), d.LoanOfficer,
		})
	}
	return t
}

func Accounts(accounts []models.BankAccount) Table {
	t := Table{
		Title:   "Accounts",
		Columns: []string{"Account Number", "Account Title", "Mobile", "Category", "Sub Category", "Opened", "Officer"},
	}
	for _, a := range accounts {
		t.Rows = append(t.Rows, []string{
			a.AccountNumber, a.AccountTitle, a.MobileNumber, string(a.Category), a.SubCategory,
			a.CreateDate.String(), a.LoanOfficer,
		})
	}
	return t
}

func ChequeBooks(view collection.InventoryView[models.ChequeBook]) Table {
	t := Table{
		Title:   "Cheque Books " + tallyLabel(view.Tally),
		Columns: append(instrumentColumns(), "Leaves", "Serial From", "Serial To"),
	}
	for _, cb := range view.Items {
		leaves := ""
		if cb.LeafCount > 0 {
			leaves = strconv.Itoa(cb.LeafCount)
		}
		t.Rows = append(t.Rows, append(instrumentRow(cb.Instrument), leaves, cb.SerialFrom, cb.SerialTo))
	}
	return t
}

func DebitCards(view collection.InventoryView[models.DebitCard]) Table {
	t := Table{
		Title:   "Debit Cards " + tallyLabel(view.Tally),
		Columns: append(instrumentColumns(), "Card Number", "Card Type"),
	}
	for _, c := range view.Items {
		t.Rows = append(t.Rows, append(instrumentRow(c.Instrument), c.CardNumber, c.CardType))
	}
	return t
}

func instrumentColumns() []string {
	return []string{"Account Number", "Account Title", "Mobile", "Officer", "Received", "Delivered", "Status"}
}

func instrumentRow(i models.Instrument) []string {
	delivered := ""
	if i.Delivered() {
		delivered = i.DeliveryDate.String()
	}
	return []string{
		i.AccountNumber, i.AccountTitle, i.MobileNumber, i.LoanOfficer,
		i.ReceivedDate.String(), delivered, string(i.Status),
	}
}

func tallyLabel(t collection.Tally) string {
	return "(total " + strconv.Itoa(t.Total) +
		", pending " + strconv.Itoa(t.Pending) +
		", submitted " + strconv.Itoa(t.Submitted) + ")"
}
