package event

import "testing"

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

type selfRemoving struct {
	d     *Dispatcher
	calls int
}

func (s *selfRemoving) OnEvent(e Event) {
	s.calls++
	s.d.Unsubscribe(e.Type, s)
}

func TestDispatchOnlyToSubscribedType(t *testing.T) {
	d := NewDispatcher()
	gold := &recorder{}
	wave := &recorder{}
	d.Subscribe(GoldAdded, gold)
	d.Subscribe(WaveStarted, wave)

	d.Dispatch(Event{Type: GoldAdded, Data: GoldChange{Amount: 5, Balance: 5}})

	if len(gold.got) != 1 {
		t.Fatalf("gold listener got %d events, want 1", len(gold.got))
	}
	if change := gold.got[0].Data.(GoldChange); change.Amount != 5 {
		t.Errorf("amount = %d, want 5", change.Amount)
	}
	if len(wave.got) != 0 {
		t.Errorf("wave listener should not receive gold events")
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(GoldSpent, a)
	d.Subscribe(GoldSpent, b)
	d.Unsubscribe(GoldSpent, a)
	d.Dispatch(Event{Type: GoldSpent})

	if len(a.got) != 0 || len(b.got) != 1 {
		t.Errorf("a=%d b=%d, want 0 and 1", len(a.got), len(b.got))
	}
}

func TestListenerMayUnsubscribeWhileHandling(t *testing.T) {
	d := NewDispatcher()
	s := &selfRemoving{d: d}
	after := &recorder{}
	d.Subscribe(EnemyKilled, s)
	d.Subscribe(EnemyKilled, after)

	d.Dispatch(Event{Type: EnemyKilled})
	d.Dispatch(Event{Type: EnemyKilled})

	if s.calls != 1 {
		t.Errorf("self-removing listener called %d times, want 1", s.calls)
	}
	if len(after.got) != 2 {
		t.Errorf("second listener got %d events, want 2", len(after.got))
	}
}
