package orders

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

func paidOrder(status string) *models.Order {
	total, _ := decimal.NewFromString("104.99")
	return &models.Order{
		Status:        status,
		PaymentStatus: models.PaymentStatusPaid,
		Total:         total,
	}
}

func TestForwardPath(t *testing.T) {
	order := paidOrder(models.OrderStatusPending)

	steps := []string{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}
	for _, next := range steps {
		if err := Apply(order, Transition{To: next}); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	if order.ShippedAt == nil || order.DeliveredAt == nil {
		t.Fatal("expected shippedAt and deliveredAt to be set on the forward path")
	}
}

func TestSkippingProcessingIsAllowed(t *testing.T) {
	// Décision de politique : PENDING → SHIPPED direct est accepté
	order := paidOrder(models.OrderStatusPending)

	if err := Apply(order, Transition{To: models.OrderStatusShipped}); err != nil {
		t.Fatalf("PENDING → SHIPPED should be allowed: %v", err)
	}
	if order.Status != models.OrderStatusShipped {
		t.Fatalf("expected status SHIPPED, got %s", order.Status)
	}
	if order.ShippedAt == nil {
		t.Fatal("expected shippedAt to be set even when PROCESSING was skipped")
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	for _, terminal := range []string{
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	} {
		order := paidOrder(terminal)
		err := Apply(order, Transition{To: models.OrderStatusProcessing})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected InvalidTransition from %s, got %v", terminal, err)
		}
		if order.Status != terminal {
			t.Fatalf("order must not be mutated on rejected transition, got %s", order.Status)
		}
	}
}

func TestDeliveredOnlyAllowsRefund(t *testing.T) {
	order := paidOrder(models.OrderStatusDelivered)

	if err := Apply(order, Transition{To: models.OrderStatusShipped}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
	if err := Apply(order, Transition{To: models.OrderStatusRefunded}); err != nil {
		t.Fatalf("DELIVERED → REFUNDED should be allowed: %v", err)
	}
}

func TestRefundableFromAnyPaidState(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		order := paidOrder(status)
		if err := Apply(order, Transition{To: models.OrderStatusRefunded}); err != nil {
			t.Fatalf("%s (payé) → REFUNDED should be allowed: %v", status, err)
		}
	}
}

func TestRefundRequiresPayment(t *testing.T) {
	order := paidOrder(models.OrderStatusPending)
	order.PaymentStatus = models.PaymentStatusPending

	err := Apply(order, Transition{To: models.OrderStatusRefunded})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected InvalidTransition for unpaid order, got %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatal("order must not be mutated on rejected refund")
	}
}

func TestCancelRequiresReason(t *testing.T) {
	order := paidOrder(models.OrderStatusPending)

	err := Apply(order, Transition{To: models.OrderStatusCancelled})
	if !errors.Is(err, ErrCancelReasonRequired) {
		t.Fatalf("expected ErrCancelReasonRequired, got %v", err)
	}

	err = Apply(order, Transition{To: models.OrderStatusCancelled, CancelReason: "client absent"})
	if err != nil {
		t.Fatalf("cancel with reason failed: %v", err)
	}
	if order.CancelledAt == nil || order.CancelReason != "client absent" {
		t.Fatal("expected cancelledAt and cancelReason to be set")
	}
}

func TestRefundDefaultsToFullTotal(t *testing.T) {
	order := paidOrder(models.OrderStatusShipped)

	if err := Apply(order, Transition{To: models.OrderStatusRefunded}); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if order.RefundAmount == nil || !order.RefundAmount.Equal(order.Total) {
		t.Fatalf("expected full refund of %s, got %v", order.Total, order.RefundAmount)
	}
	if order.PaymentStatus != models.PaymentStatusRefunded {
		t.Fatalf("expected payment status REFUNDED, got %s", order.PaymentStatus)
	}
	if order.RefundedAt == nil {
		t.Fatal("expected refundedAt to be set")
	}
}

func TestPartialRefund(t *testing.T) {
	order := paidOrder(models.OrderStatusDelivered)
	partial, _ := decimal.NewFromString("20.00")

	if err := Apply(order, Transition{To: models.OrderStatusRefunded, RefundAmount: &partial}); err != nil {
		t.Fatalf("partial refund failed: %v", err)
	}
	if !order.RefundAmount.Equal(partial) {
		t.Fatalf("expected refund 20.00, got %s", order.RefundAmount)
	}
}

func TestUnknownIsNeverReachable(t *testing.T) {
	for from := range map[string]struct{}{
		models.OrderStatusPending:    {},
		models.OrderStatusProcessing: {},
		models.OrderStatusShipped:    {},
		models.OrderStatusDelivered:  {},
	} {
		if CanTransition(from, models.OrderStatusUnknown) {
			t.Fatalf("UNKNOWN must not be reachable from %s", from)
		}
	}
}

func TestSelfTransitionRejected(t *testing.T) {
	if CanTransition(models.OrderStatusPending, models.OrderStatusPending) {
		t.Fatal("self transition must be rejected")
	}
}

func TestShippedAtNotOverwritten(t *testing.T) {
	order := paidOrder(models.OrderStatusPending)
	earlier := time.Now().Add(-time.Hour)
	order.ShippedAt = &earlier
	order.Status = models.OrderStatusShipped

	if err := Apply(order, Transition{To: models.OrderStatusDelivered}); err != nil {
		t.Fatalf("delivery failed: %v", err)
	}
	if !order.ShippedAt.Equal(earlier) {
		t.Fatal("shippedAt must not be overwritten")
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []string{
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	}
	for _, status := range terminal {
		if !IsTerminal(status) {
			t.Fatalf("%s should be terminal", status)
		}
	}

	open := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
	}
	for _, status := range open {
		if IsTerminal(status) {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}
