package pa

import (
	"testing"

	"velora_back_end/internal/models"
)

func TestRefundEligible(t *testing.T) {
	cases := []struct {
		name          string
		status        string
		paymentStatus string
		want          bool
	}{
		{"livrée et payée", models.OrderStatusDelivered, models.PaymentStatusPaid, true},
		{"expédiée et payée", models.OrderStatusShipped, models.PaymentStatusPaid, true},
		{"en attente et payée", models.OrderStatusPending, models.PaymentStatusPaid, true},
		{"en traitement et payée", models.OrderStatusProcessing, models.PaymentStatusPaid, true},
		{"en attente non payée", models.OrderStatusPending, models.PaymentStatusPending, false},
		{"annulée", models.OrderStatusCancelled, models.PaymentStatusPaid, false},
		{"déjà remboursée", models.OrderStatusRefunded, models.PaymentStatusPaid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := models.Order{Status: tc.status, PaymentStatus: tc.paymentStatus}
			if got := refundEligible(order); got != tc.want {
				t.Fatalf("status=%s payment=%s: got %v, expected %v", tc.status, tc.paymentStatus, got, tc.want)
			}
		})
	}
}
