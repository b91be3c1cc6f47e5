package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

// ErrInvalidTransition est renvoyée quand une transition de statut n'est
// pas autorisée par la table ci-dessous.
var ErrInvalidTransition = errors.New("InvalidTransition")

// ErrCancelReasonRequired : annuler une commande exige un motif.
var ErrCancelReasonRequired = errors.New("cancel reason required")

// Table des transitions autorisées. Le chemin nominal est
// PENDING → PROCESSING → SHIPPED → DELIVERED ; sauter un état
// intermédiaire vers l'avant est accepté (un admin peut passer
// directement PENDING → SHIPPED, shippedAt est posé quand même).
// REFUNDED est atteignable depuis tout état payé — Apply vérifie le
// paiement. DELIVERED, CANCELLED et REFUNDED sont terminaux, à
// l'exception du remboursement d'une commande livrée. UNKNOWN n'est
// jamais une cible.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending: {
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered,
		models.OrderStatusRefunded,
	},
	models.OrderStatusDelivered: {
		models.OrderStatusRefunded,
	},
	models.OrderStatusCancelled: {},
	models.OrderStatusRefunded:  {},
}

// CanTransition indique si le passage from → to est autorisé.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal indique si un statut n'admet plus de transition vers l'avant.
func IsTerminal(status string) bool {
	return status == models.OrderStatusDelivered ||
		status == models.OrderStatusCancelled ||
		status == models.OrderStatusRefunded
}

// Transition porte les paramètres optionnels d'un changement de statut.
type Transition struct {
	To           string
	CancelReason string
	// Montant remboursé ; nil = remboursement intégral du total
	RefundAmount *decimal.Decimal
	Now          time.Time
}

// Apply applique une transition sur la commande : vérifie la table,
// pose les horodatages associés (shippedAt / deliveredAt / cancelledAt /
// refundedAt) et les champs annexes (motif d'annulation, montant
// remboursé). La commande n'est pas modifiée si la transition est refusée.
func Apply(order *models.Order, tr Transition) error {
	if !CanTransition(order.Status, tr.To) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, tr.To)
	}

	now := tr.Now
	if now.IsZero() {
		now = time.Now()
	}

	switch tr.To {
	case models.OrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	case models.OrderStatusCancelled:
		if tr.CancelReason == "" {
			return ErrCancelReasonRequired
		}
		order.CancelReason = tr.CancelReason
		order.CancelledAt = &now
	case models.OrderStatusRefunded:
		if order.PaymentStatus != models.PaymentStatusPaid {
			return fmt.Errorf("%w: remboursement d'une commande non payée (%s)",
				ErrInvalidTransition, order.PaymentStatus)
		}
		amount := tr.RefundAmount
		if amount == nil {
			full := order.Total
			amount = &full
		}
		order.RefundAmount = amount
		order.RefundedAt = &now
		order.PaymentStatus = models.PaymentStatusRefunded
	}

	order.Status = tr.To
	order.UpdatedAt = now
	return nil
}
