package inventory

import (
	"testing"

	"ready-trade-go/order"
)

func TestApplyFill(t *testing.T) {
	tr := NewTracker(100)
	tr.ApplyFill(order.Buy, 5)
	if tr.Position() != 5 {
		t.Fatalf("expected position 5, got %d", tr.Position())
	}
	tr.ApplyFill(order.Sell, 8)
	if tr.Position() != -3 {
		t.Fatalf("expected position -3, got %d", tr.Position())
	}
}

func TestAdmitBuyLimit(t *testing.T) {
	tr := NewTracker(100)
	tr.ApplyFill(order.Buy, 90)
	if err := tr.Admit(order.Buy, 10); err != nil {
		t.Fatalf("10 lots should fit exactly: %v", err)
	}
	tr.Reserve(order.Buy, 10)
	if err := tr.Admit(order.Buy, 1); err == nil {
		t.Fatal("expected limit breach")
	}
}

func TestAdmitSellLimit(t *testing.T) {
	tr := NewTracker(100)
	tr.ApplyFill(order.Sell, 60)
	tr.Reserve(order.Sell, 40)
	if err := tr.Admit(order.Sell, 1); err == nil {
		t.Fatal("expected limit breach on sell side")
	}
	tr.Release(order.Sell, 40)
	if err := tr.Admit(order.Sell, 40); err != nil {
		t.Fatalf("release did not free headroom: %v", err)
	}
}

func TestReleaseClampsAtZero(t *testing.T) {
	tr := NewTracker(100)
	tr.Reserve(order.Buy, 5)
	tr.Release(order.Buy, 8)
	if tr.WorkingBuy() != 0 {
		t.Fatalf("working buy went negative: %d", tr.WorkingBuy())
	}
}

func TestHeadroom(t *testing.T) {
	tr := NewTracker(100)
	tr.ApplyFill(order.Buy, 30)
	if got := tr.Headroom(order.Buy, 50); got != 20 {
		t.Fatalf("expected buy headroom 20, got %d", got)
	}
	if got := tr.Headroom(order.Sell, 50); got != 80 {
		t.Fatalf("expected sell headroom 80, got %d", got)
	}
	tr.ApplyFill(order.Buy, 30)
	if got := tr.Headroom(order.Buy, 50); got != 0 {
		t.Fatalf("headroom past cap must clamp to 0, got %d", got)
	}
}
