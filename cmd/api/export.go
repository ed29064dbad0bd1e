package main

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mcclellann/branchdesk/pkg/export"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/store"
	"github.com/mcclellann/branchdesk/pkg/validate"
)

// exportHandler renders one slot's list view with the same filters its list
// endpoint takes.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	slot := mux.Vars(r)["slot"]
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var table export.Table
	switch slot {
	case store.SlotTransactions:
		typ := models.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
		if err := validate.Var("type", string(typ), "omitempty,oneof=CD LR ID BC CW LD"); err != nil {
			writeError(w, r, err)
			return
		}
		table = export.Transactions(s.ledger.ListTransactions(q.Date, typ), s.formatter)
	case store.SlotDisbursements:
		table = export.Disbursements(s.ledger.DisbursementGroups(q), s.formatter)
	case store.SlotDeposits:
		typ, err := depositType(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		table = export.Deposits(s.ledger.ListDeposits(q, typ), s.formatter)
	case store.SlotAccounts:
		table = export.Accounts(s.ledger.ListAccounts(q))
	case store.SlotChequeBooks:
		table = export.ChequeBooks(s.ledger.ChequeBookInventory(q))
	case store.SlotDebitCards:
		table = export.DebitCards(s.ledger.DebitCardInventory(q))
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown slot " + slot})
		return
	}

	var buf bytes.Buffer
	if err := format.Write(&buf, table); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", attachment(slot, string(format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
