package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mcclellann/branchdesk/pkg/deposit"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/summary"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"github.com/shopspring/decimal"
)

type formattedSummary struct {
	CashIn  string `json:"cashIn"`
	CashOut string `json:"cashOut"`
	Net     string `json:"net"`
}

type summaryResponse struct {
	summary.Overview
	Formatted struct {
		Today    formattedSummary `json:"today"`
		Previous formattedSummary `json:"previous"`
		Average  formattedSummary `json:"average"`
	} `json:"formatted"`
}

func (s *Server) format(in, out, net decimal.Decimal) formattedSummary {
	return formattedSummary{
		CashIn:  s.formatter.Format(in),
		CashOut: s.formatter.Format(out),
		Net:     s.formatter.Format(net),
	}
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if err := validate.Var("date", raw, "omitempty,isodate"); err != nil {
		writeError(w, r, err)
		return
	}
	window, err := queryInt(r, "window", summary.DefaultWindow, "min=1,max=90")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var day models.Date
	if raw != "" {
		day = models.MustParseDate(raw)
	}

	resp := summaryResponse{Overview: s.ledger.Overview(day, window)}
	o := resp.Overview
	resp.Formatted.Today = s.format(o.Today.TotalCashIn, o.Today.TotalCashOut, o.Today.NetPosition)
	resp.Formatted.Previous = s.format(o.Previous.TotalCashIn, o.Previous.TotalCashOut, o.Previous.NetPosition)
	resp.Formatted.Average = s.format(o.Average.TotalCashIn, o.Average.TotalCashOut, o.Average.NetPosition)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) officersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Roster())
}

func (s *Server) listTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	typ := models.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	if err := validate.Var("date", date, "omitempty,dateprefix"); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate.Var("type", string(typ), "omitempty,oneof=CD LR ID BC CW LD"); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.ListTransactions(date, typ))
}

func (s *Server) recordTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if !decode(w, r, &tx, false) {
		return
	}
	recorded, err := s.ledger.RecordTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recorded)
}

func (s *Server) listDisbursementsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.DisbursementGroups(q))
}

func (s *Server) createDisbursementHandler(w http.ResponseWriter, r *http.Request) {
	var d models.Disbursement
	if !decode(w, r, &d, false) {
		return
	}
	created, err := s.ledger.CreateDisbursement(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateDisbursementHandler(w http.ResponseWriter, r *http.Request) {
	var d models.Disbursement
	if !decode(w, r, &d, false) {
		return
	}
	updated, err := s.ledger.UpdateDisbursement(r.Context(), mux.Vars(r)["id"], d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteDisbursementHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteDisbursement(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func depositType(r *http.Request) (models.DepositType, error) {
	typ := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type")))
	if err := validate.Var("type", typ, "omitempty,oneof=FDR DPS"); err != nil {
		return "", err
	}
	return models.DepositType(typ), nil
}

func (s *Server) listDepositsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	typ, err := depositType(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.ListDeposits(q, typ))
}

func (s *Server) openDepositHandler(w http.ResponseWriter, r *http.Request) {
	var f models.FdrDps
	if !decode(w, r, &f, false) {
		return
	}
	opened, err := s.ledger.OpenDeposit(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, opened)
}

func (s *Server) updateDepositHandler(w http.ResponseWriter, r *http.Request) {
	var f models.FdrDps
	if !decode(w, r, &f, false) {
		return
	}
	updated, err := s.ledger.UpdateDeposit(r.Context(), mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteDepositHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteDeposit(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type projectionRequest struct {
	Type              models.DepositType `json:"type" validate:"required,oneof=FDR DPS"`
	ProductName       string             `json:"productName"`
	Tenor             int                `json:"tenor" validate:"min=1,max=240"`
	InstallmentAmount decimal.Decimal    `json:"installmentAmount" validate:"gte=0"`
	OpeningDate       models.Date        `json:"openingDate" validate:"required"`
}

// projectionHandler previews the derived deposit fields while a form is
// being filled in. Nothing is stored.
func (s *Server) projectionHandler(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if !decode(w, r, &req, false) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}
	p := deposit.Derive(deposit.Draft{
		Type:              req.Type,
		ProductName:       req.ProductName,
		Tenor:             req.Tenor,
		InstallmentAmount: req.InstallmentAmount,
		OpeningDate:       req.OpeningDate,
	})
	writeJSON(w, http.StatusOK, struct {
		deposit.Projection
		FormattedPrincipal string `json:"formattedPrincipal"`
	}{p, s.formatter.Format(p.PrincipalAmount)})
}

func (s *Server) listAccountsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.ListAccounts(q))
}

func (s *Server) createAccountHandler(w http.ResponseWriter, r *http.Request) {
	var a models.BankAccount
	if !decode(w, r, &a, false) {
		return
	}
	created, err := s.ledger.CreateAccount(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var a models.BankAccount
	if !decode(w, r, &a, false) {
		return
	}
	updated, err := s.ledger.UpdateAccount(r.Context(), mux.Vars(r)["id"], a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteAccount(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) accountLinksHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.AccountLinks(mux.Vars(r)["number"]))
}

type deliveryRequest struct {
	DeliveryDate models.Date `json:"deliveryDate"`
}

func (s *Server) listChequeBooksHandler(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.ChequeBookInventory(q))
}

func (s *Server) receiveChequeBookHandler(w http.ResponseWriter, r *http.Request) {
	var cb models.ChequeBook
	if !decode(w, r, &cb, false) {
		return
	}
	received, err := s.ledger.ReceiveChequeBook(r.Context(), cb)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, received)
}

func (s *Server) deliverChequeBookHandler(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !decode(w, r, &req, true) {
		return
	}
	delivered, err := s.ledger.DeliverChequeBook(r.Context(), mux.Vars(r)["id"], req.DeliveryDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, delivered)
}

func (s *Server) deleteChequeBookHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteChequeBook(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDebitCardsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.DebitCardInventory(q))
}

func (s *Server) receiveDebitCardHandler(w http.ResponseWriter, r *http.Request) {
	var card models.DebitCard
	if !decode(w, r, &card, false) {
		return
	}
	received, err := s.ledger.ReceiveDebitCard(r.Context(), card)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, received)
}

func (s *Server) deliverDebitCardHandler(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !decode(w, r, &req, true) {
		return
	}
	delivered, err := s.ledger.DeliverDebitCard(r.Context(), mux.Vars(r)["id"], req.DeliveryDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, delivered)
}

func (s *Server) deleteDebitCardHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteDebitCard(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func attachment(slot, ext string) string {
	return fmt.Sprintf("attachment; filename=%q", slot+"."+ext)
}
