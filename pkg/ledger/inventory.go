package ledger

import (
	"context"
	"fmt"

	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"go.uber.org/zap"
)

// instrument is satisfied by *models.ChequeBook and *models.DebitCard.
type instrument[T any] interface {
	*T
	Base() *models.Instrument
}

func receive[T Identified, P instrument[T]](ctx context.Context, l *Ledger, c *Collection[T], item T) (T, error) {
	base := P(&item).Base()
	base.SyncStatus()
	if err := validate.Struct(item); err != nil {
		var zero T
		return zero, err
	}
	base.ID = l.newID()
	if err := c.Add(ctx, item); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to receive %s: %w", c.Slot(), err)
	}
	logger.Info("inventory received", zap.String("slot", c.Slot()), zap.String("id", base.ID))
	return item, nil
}

func deliver[T Identified, P instrument[T]](ctx context.Context, l *Ledger, c *Collection[T], id string, on models.Date) (T, error) {
	item, err := c.Get(id)
	if err != nil {
		return item, err
	}
	if on.IsZero() {
		on = l.Today()
	}
	P(&item).Base().Deliver(on)
	if err := c.Update(ctx, item); err != nil {
		var zero T
		return zero, err
	}
	logger.Info("inventory delivered", zap.String("slot", c.Slot()), zap.String("id", id), zap.String("on", on.String()))
	return item, nil
}

// ReceiveChequeBook records a cheque book arriving at the branch. It is
// Submitted straight away only if a delivery date came with it.
func (l *Ledger) ReceiveChequeBook(ctx context.Context, cb models.ChequeBook) (models.ChequeBook, error) {
	return receive(ctx, l, l.ChequeBooks, cb)
}

// DeliverChequeBook sets the delivery date (today when zero) and marks the
// book Submitted.
func (l *Ledger) DeliverChequeBook(ctx context.Context, id string, on models.Date) (models.ChequeBook, error) {
	return deliver(ctx, l, l.ChequeBooks, id, on)
}

func (l *Ledger) DeleteChequeBook(ctx context.Context, id string) error {
	return l.ChequeBooks.Delete(ctx, id)
}

func (l *Ledger) ChequeBookInventory(q collection.Query) collection.InventoryView[models.ChequeBook] {
	return collection.Inventory(l.ChequeBooks.All(), l.roster, q)
}

func (l *Ledger) ReceiveDebitCard(ctx context.Context, card models.DebitCard) (models.DebitCard, error) {
	return receive(ctx, l, l.DebitCards, card)
}

func (l *Ledger) DeliverDebitCard(ctx context.Context, id string, on models.Date) (models.DebitCard, error) {
	return deliver(ctx, l, l.DebitCards, id, on)
}

func (l *Ledger) DeleteDebitCard(ctx context.Context, id string) error {
	return l.DebitCards.Delete(ctx, id)
}

func (l *Ledger) DebitCardInventory(q collection.Query) collection.InventoryView[models.DebitCard] {
	return collection.Inventory(l.DebitCards.All(), l.roster, q)
}
