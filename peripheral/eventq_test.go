package peripheral

import (
	"testing"

	"nodelink-go/wire"
)

func TestOfferSecondSampleDropped(t *testing.T) {
	q := &EventQueue{}
	if !q.OfferEnv(wire.EnvReading{DeciCelsius: 250}) {
		t.Fatal("first offer should store")
	}
	if q.OfferEnv(wire.EnvReading{DeciCelsius: 999}) {
		t.Fatal("second offer should be dropped while slot occupied")
	}
	f := q.NextOutgoing()
	if f.Env().DeciCelsius != 250 {
		t.Fatalf("queue should hold the first sample, got %d", f.Env().DeciCelsius)
	}
}

func TestNextOutgoingIdleIffNothingPending(t *testing.T) {
	q := &EventQueue{}
	if f := q.NextOutgoing(); f.Kind != wire.KindIdle {
		t.Fatalf("empty queue must answer idle, got %v", f.Kind)
	}
	q.OfferEnv(wire.EnvReading{Humidity: 50})
	if f := q.NextOutgoing(); f.Kind != wire.KindEnv {
		t.Fatalf("got %v", f.Kind)
	}
	if f := q.NextOutgoing(); f.Kind != wire.KindIdle {
		t.Fatal("slot must clear after delivery")
	}
}

func TestCardBeforeEnvironment(t *testing.T) {
	q := &EventQueue{}
	q.OfferEnv(wire.EnvReading{Humidity: 50})
	q.OfferCard(wire.CardID{0xDE, 0xAD, 0xBE, 0xEF})

	first := q.NextOutgoing()
	if first.Kind != wire.KindCard {
		t.Fatalf("card must go first, got %v", first.Kind)
	}
	if !q.Pending(wire.KindEnv) {
		t.Fatal("environment must remain pending")
	}
	second := q.NextOutgoing()
	if second.Kind != wire.KindEnv {
		t.Fatalf("environment must follow, got %v", second.Kind)
	}
}

func TestOfferGenericKindAndMisuse(t *testing.T) {
	q := &EventQueue{}
	ok, err := q.Offer(wire.KindCard, []byte{1, 2, 3, 4})
	if !ok || err != nil {
		t.Fatalf("Offer = %v, %v", ok, err)
	}
	if _, err := q.Offer(wire.KindEnv, make([]byte, wire.PayloadSize+1)); err != wire.ErrPayloadTooLarge {
		t.Fatalf("oversized payload: %v", err)
	}
	ok, err = q.Offer(wire.Kind(0x7F), nil)
	if ok || err != nil {
		t.Fatalf("reserved kinds have no slot: %v, %v", ok, err)
	}
}

func TestAtMostOnceDelivery(t *testing.T) {
	q := &EventQueue{}
	q.OfferCard(wire.CardID{1, 2, 3, 4})
	q.NextOutgoing()
	if !q.OfferCard(wire.CardID{5, 6, 7, 8}) {
		t.Fatal("slot should be free after delivery")
	}
}
