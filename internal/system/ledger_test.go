package system

import (
	"testing"

	"go-tower-sim/internal/event"
	"go-tower-sim/internal/utils"
)

type goldRecorder struct {
	spent []int
	added []int
}

func (r *goldRecorder) OnEvent(e event.Event) {
	change := e.Data.(event.GoldChange)
	switch e.Type {
	case event.GoldSpent:
		r.spent = append(r.spent, change.Amount)
	case event.GoldAdded:
		r.added = append(r.added, change.Amount)
	}
}

func newLedger(start int) (*Ledger, *goldRecorder) {
	d := event.NewDispatcher()
	rec := &goldRecorder{}
	d.Subscribe(event.GoldSpent, rec)
	d.Subscribe(event.GoldAdded, rec)
	return NewLedger(start, d), rec
}

func TestSpendScenario(t *testing.T) {
	l, rec := newLedger(100)

	if l.Spend(150) {
		t.Error("Spend(150) succeeded with 100 gold")
	}
	if l.Balance() != 100 || len(rec.spent) != 0 {
		t.Fatalf("balance=%d events=%v after rejected spend", l.Balance(), rec.spent)
	}

	if !l.Spend(60) {
		t.Fatal("Spend(60) failed")
	}
	if l.Balance() != 40 {
		t.Errorf("balance = %d, want 40", l.Balance())
	}
	if len(rec.spent) != 1 || rec.spent[0] != 60 {
		t.Errorf("spent events = %v, want [60]", rec.spent)
	}
}

func TestAddHasNoCap(t *testing.T) {
	l, rec := newLedger(0)
	l.Add(1 << 30)
	l.Add(1 << 30)
	if l.Balance() != 1<<31 {
		t.Errorf("balance = %d", l.Balance())
	}
	if len(rec.added) != 2 {
		t.Errorf("added events = %v", rec.added)
	}
	l.Add(-5)
	if l.Balance() != 1<<31 || len(rec.added) != 2 {
		t.Error("negative credit changed the ledger")
	}
}

func TestNegativeSpendRejected(t *testing.T) {
	l, _ := newLedger(10)
	if l.Spend(-5) || l.Balance() != 10 {
		t.Errorf("negative spend mutated balance to %d", l.Balance())
	}
}

func TestSpendDebitsExactly(t *testing.T) {
	for _, a := range []int{0, 1, 25, 50} {
		l, _ := newLedger(50)
		before := l.Balance()
		if !l.Spend(a) {
			t.Fatalf("Spend(%d) failed with %d", a, before)
		}
		if l.Balance() != before-a {
			t.Errorf("Spend(%d): balance %d, want %d", a, l.Balance(), before-a)
		}
		if !l.HasEnough(0) {
			t.Error("HasEnough(0) must always hold")
		}
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	rng := utils.NewPRNGService(17)
	l, _ := newLedger(20)
	for i := 0; i < 5000; i++ {
		amount := rng.Intn(60)
		if rng.Intn(2) == 0 {
			l.Spend(amount)
		} else {
			l.Add(amount)
		}
		if l.Balance() < 0 {
			t.Fatalf("balance went negative at step %d", i)
		}
	}
}
