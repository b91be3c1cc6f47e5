package utils

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

// SendOrderStatusEmail envoie un email de notification de changement de statut
func SendOrderStatusEmail(order models.Order, customerEmail string, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	err := SendConfirmationEmail(customerEmail, subject, html, nil)
	if err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, customerEmail)
	return nil
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.OrderStatusProcessing:
		return "✅ Votre commande est en préparation - Velora"
	case models.OrderStatusShipped:
		return "📦 Votre commande a été expédiée - Velora"
	case models.OrderStatusDelivered:
		return "🎉 Votre commande a été livrée - Velora"
	case models.OrderStatusCancelled:
		return "❌ Commande annulée - Velora"
	case models.OrderStatusRefunded:
		return "💰 Remboursement effectué - Velora"
	default:
		return "📋 Mise à jour de votre commande - Velora"
	}
}

func generateStatusEmailHTML(order models.Order, status string) string {
	statusMessage := getStatusMessage(order, status)
	statusIcon := getStatusIcon(status)
	statusColor := getStatusColor(status)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Mise à jour de commande</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #0ea5e9 0%%, #6366f1 100%%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                                %s Velora
                            </h1>
                            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 16px; opacity: 0.9;">
                                Mise à jour de votre commande
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px 30px 0 30px; text-align: center;">
                            <div style="display: inline-block; padding: 12px 24px; background-color: %s; color: #ffffff; border-radius: 25px; font-weight: 600; font-size: 14px; text-transform: uppercase; letter-spacing: 0.5px;">
                                %s %s
                            </div>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                                %s
                            </p>
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f8f9fa; border-radius: 8px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <table role="presentation" style="width: 100%%; border-collapse: collapse;">
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Numéro de commande:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right;">
                                                    %s
                                                </td>
                                            </tr>
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Montant total:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right; font-weight: 600;">
                                                    %s€
                                                </td>
                                            </tr>
                                        </table>
                                    </td>
                                </tr>
                            </table>
                            <table role="presentation" style="width: 100%%; margin: 30px 0;">
                                <tr>
                                    <td style="text-align: center;">
                                        <a href="%s/orders" style="display: inline-block; padding: 14px 32px; background-color: #0ea5e9; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 15px;">
                                            Voir ma commande
                                        </a>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px; background-color: #f8f9fa; border-radius: 0 0 12px 12px; text-align: center;">
                            <p style="margin: 0; color: #999999; font-size: 12px;">
                                Cet email a été envoyé automatiquement, merci de ne pas y répondre.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`, statusIcon, statusColor, statusIcon, status, statusMessage, order.OrderNumber, order.Total.StringFixed(2), frontendBaseURL())

	return html
}

func getStatusMessage(order models.Order, status string) string {
	switch status {
	case models.OrderStatusProcessing:
		return "Votre paiement a été confirmé. Nous préparons votre commande."
	case models.OrderStatusShipped:
		msg := "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
		if order.TrackingNumber != "" {
			msg += fmt.Sprintf(" Numéro de suivi: %s", order.TrackingNumber)
		}
		return msg
	case models.OrderStatusDelivered:
		return "Votre commande a été livrée avec succès. Nous espérons que vous en êtes satisfait !"
	case models.OrderStatusCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	case models.OrderStatusRefunded:
		return "Votre remboursement a été traité. Les fonds seront crédités sur votre compte sous 5-10 jours ouvrés."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func getStatusIcon(status string) string {
	switch status {
	case models.OrderStatusProcessing:
		return "✅"
	case models.OrderStatusShipped:
		return "📦"
	case models.OrderStatusDelivered:
		return "🎉"
	case models.OrderStatusCancelled:
		return "❌"
	case models.OrderStatusRefunded:
		return "💰"
	default:
		return "📋"
	}
}

func getStatusColor(status string) string {
	switch status {
	case models.OrderStatusProcessing:
		return "#10b981"
	case models.OrderStatusShipped:
		return "#3b82f6"
	case models.OrderStatusDelivered:
		return "#8b5cf6"
	case models.OrderStatusCancelled:
		return "#ef4444"
	case models.OrderStatusRefunded:
		return "#f59e0b"
	default:
		return "#6b7280"
	}
}

// SendRefundRequestEmail confirme au client la réception de sa demande de remboursement
func SendRefundRequestEmail(customerEmail string, orderNumber string, reason string) error {
	subject := "💰 Demande de remboursement reçue - Velora"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Demande de remboursement reçue</h2>
		<p>Bonjour,</p>
		<p>Nous avons bien reçu votre demande de remboursement pour la commande <strong>%s</strong>.</p>
		<p style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; color: #555;">
			<strong>Motif:</strong> %s
		</p>
		<p>Notre équipe va examiner votre demande sous 2 à 3 jours ouvrés et vous tiendra informé par email.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Velora</strong>
		</p>
	</div>
</body>
</html>`, orderNumber, reason)

	return SendConfirmationEmail(customerEmail, subject, html, nil)
}

// SendRefundApprovedEmail notifie le client que son remboursement a été accepté
func SendRefundApprovedEmail(customerEmail string, orderNumber string, amount decimal.Decimal) error {
	subject := "✅ Remboursement accepté - Velora"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #10b981;">Remboursement accepté</h2>
		<p>Bonjour,</p>
		<p>Votre demande de remboursement pour la commande <strong>%s</strong> a été acceptée.</p>
		<p style="font-size: 24px; font-weight: bold; text-align: center; color: #10b981;">%s€</p>
		<p>Les fonds seront crédités sur votre moyen de paiement d'origine sous 5 à 10 jours ouvrés.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Velora</strong>
		</p>
	</div>
</body>
</html>`, orderNumber, amount.StringFixed(2))

	return SendConfirmationEmail(customerEmail, subject, html, nil)
}

// SendRefundRejectedEmail notifie le client que sa demande de remboursement a été refusée
func SendRefundRejectedEmail(customerEmail string, orderNumber string, reason string) error {
	subject := "❌ Demande de remboursement refusée - Velora"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #ef4444;">Demande de remboursement refusée</h2>
		<p>Bonjour,</p>
		<p>Après examen, votre demande de remboursement pour la commande <strong>%s</strong> n'a pas pu être acceptée.</p>
		<p style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; color: #555;">
			<strong>Motif:</strong> %s
		</p>
		<p>Si vous pensez qu'il s'agit d'une erreur, contactez notre support.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Velora</strong>
		</p>
	</div>
</body>
</html>`, orderNumber, reason)

	return SendConfirmationEmail(customerEmail, subject, html, nil)
}
