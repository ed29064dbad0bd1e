package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mcclellann/branchdesk/pkg/config"
	"github.com/mcclellann/branchdesk/pkg/currency"
	"github.com/mcclellann/branchdesk/pkg/ledger"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/store"
	"go.uber.org/zap"
)

// Server holds the ledger instance.
type Server struct {
	ledger    *ledger.Ledger
	storage   store.Storage // Keep a reference to the storage to close it
	formatter currency.Formatter
}

func NewServer(s store.Storage, roster []string, f currency.Formatter, opts ...ledger.Option) *Server {
	return &Server{
		ledger:    ledger.NewLedger(s, roster, opts...),
		storage:   s,
		formatter: f,
	}
}

func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/summary", s.summaryHandler).Methods("GET")
	router.HandleFunc("/officers", s.officersHandler).Methods("GET")

	router.HandleFunc("/transactions", s.listTransactionsHandler).Methods("GET")
	router.HandleFunc("/transactions", s.recordTransactionHandler).Methods("POST")

	router.HandleFunc("/disbursements", s.listDisbursementsHandler).Methods("GET")
	router.HandleFunc("/disbursements", s.createDisbursementHandler).Methods("POST")
	router.HandleFunc("/disbursements/{id}", s.updateDisbursementHandler).Methods("PUT")
	router.HandleFunc("/disbursements/{id}", s.deleteDisbursementHandler).Methods("DELETE")

	router.HandleFunc("/deposits", s.listDepositsHandler).Methods("GET")
	router.HandleFunc("/deposits", s.openDepositHandler).Methods("POST")
	router.HandleFunc("/deposits/projection", s.projectionHandler).Methods("POST")
	router.HandleFunc("/deposits/{id}", s.updateDepositHandler).Methods("PUT")
	router.HandleFunc("/deposits/{id}", s.deleteDepositHandler).Methods("DELETE")

	router.HandleFunc("/accounts", s.listAccountsHandler).Methods("GET")
	router.HandleFunc("/accounts", s.createAccountHandler).Methods("POST")
	router.HandleFunc("/accounts/{number}/links", s.accountLinksHandler).Methods("GET")
	router.HandleFunc("/accounts/{id}", s.updateAccountHandler).Methods("PUT")
	router.HandleFunc("/accounts/{id}", s.deleteAccountHandler).Methods("DELETE")

	router.HandleFunc("/cheque-books", s.listChequeBooksHandler).Methods("GET")
	router.HandleFunc("/cheque-books", s.receiveChequeBookHandler).Methods("POST")
	router.HandleFunc("/cheque-books/{id}/delivery", s.deliverChequeBookHandler).Methods("PUT")
	router.HandleFunc("/cheque-books/{id}", s.deleteChequeBookHandler).Methods("DELETE")

	router.HandleFunc("/debit-cards", s.listDebitCardsHandler).Methods("GET")
	router.HandleFunc("/debit-cards", s.receiveDebitCardHandler).Methods("POST")
	router.HandleFunc("/debit-cards/{id}/delivery", s.deliverDebitCardHandler).Methods("PUT")
	router.HandleFunc("/debit-cards/{id}", s.deleteDebitCardHandler).Methods("DELETE")

	router.HandleFunc("/export/{slot}", s.exportHandler).Methods("GET")

	return router
}

// refreshMaturity runs once at start and then on every tick until ctx ends.
func (s *Server) refreshMaturity(ctx context.Context, every time.Duration) {
	run := func() {
		if _, err := s.ledger.RefreshMaturity(ctx, s.ledger.Today()); err != nil {
			logger.Error("Maturity refresh failed", err)
		}
	}
	run()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func run() error {
	cfg, err := config.LoadFromConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	defer storage.Close()

	var opts []ledger.Option
	if cfg.Branch.SeedPath != "" {
		seed, err := ledger.ReadSeed(cfg.Branch.SeedPath)
		if err != nil {
			return err
		}
		opts = append(opts, ledger.WithSeed(seed))
	}

	server := NewServer(storage, cfg.Branch.Officers, currency.ParseFormatter(cfg.Branch.Locale), opts...)
	if err := server.ledger.Load(ctx); err != nil {
		return err
	}

	go server.refreshMaturity(ctx, cfg.Branch.MaturityCheckInterval())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		logger.Error("Server exited", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
