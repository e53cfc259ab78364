package system

import (
	"log"

	"go-tower-sim/internal/event"
)

// Ledger holds the player's gold. The balance never goes negative.
type Ledger struct {
	balance         int
	eventDispatcher *event.Dispatcher
}

func NewLedger(startingGold int, eventDispatcher *event.Dispatcher) *Ledger {
	if startingGold < 0 {
		startingGold = 0
	}
	return &Ledger{balance: startingGold, eventDispatcher: eventDispatcher}
}

func (l *Ledger) Balance() int {
	return l.balance
}

func (l *Ledger) HasEnough(amount int) bool {
	return l.balance >= amount
}

// Spend debits amount if the balance covers it. A short balance is a silent
// no-op: nothing changes and no event fires.
func (l *Ledger) Spend(amount int) bool {
	if amount < 0 || !l.HasEnough(amount) {
		return false
	}
	l.balance -= amount
	l.dispatch(event.GoldSpent, amount)
	return true
}

// Add credits amount without an upper bound.
func (l *Ledger) Add(amount int) {
	if amount < 0 {
		log.Printf("Ignoring negative gold credit: %d", amount)
		return
	}
	l.balance += amount
	l.dispatch(event.GoldAdded, amount)
}

func (l *Ledger) dispatch(t event.EventType, amount int) {
	if l.eventDispatcher == nil {
		return
	}
	l.eventDispatcher.Dispatch(event.Event{
		Type: t,
		Data: event.GoldChange{Amount: amount, Balance: l.balance},
	})
}
