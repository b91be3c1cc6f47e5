package utils

import (
	"fmt"
	"os"

	"velora_back_end/internal/models"
)

func frontendBaseURL() string {
	u := os.Getenv("FRONTEND_URL")
	if u == "" {
		return "http://localhost:5173"
	}
	return u
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		name := item.ProductName
		if item.VariantName != "" {
			name += " — " + item.VariantName
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s€</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s€</td>
			</tr>`, name, item.Quantity, item.Price.StringFixed(2), item.Total.StringFixed(2))
	}

	discountRow := ""
	if order.Discount.IsPositive() {
		discountRow = fmt.Sprintf(`
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Remise (%s):</td>
					<td style="padding: 10px; color: #10b981;">-%s€</td>
				</tr>`, order.CouponCode, order.Discount.StringFixed(2))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande %s</h2>
		<p>Bonjour %s,</p>
		<p>Votre commande a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Sous-total:</td>
					<td style="padding: 10px;">%s€</td>
				</tr>%s
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Livraison:</td>
					<td style="padding: 10px;">%s€</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">TVA:</td>
					<td style="padding: 10px;">%s€</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s€</td>
				</tr>
			</tfoot>
		</table>

		<h3>Adresse de livraison</h3>
		<p style="color: #555;">
			%s<br>
			%s<br>
			%s %s<br>
			%s
		</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Velora</strong>
		</p>
	</div>
</body>
</html>`,
		order.OrderNumber,
		order.ShippingFullName,
		itemsHTML,
		order.Subtotal.StringFixed(2),
		discountRow,
		order.ShippingCost.StringFixed(2),
		order.Tax.StringFixed(2),
		order.Total.StringFixed(2),
		order.ShippingFullName,
		order.ShippingLine1,
		order.ShippingPostalCode, order.ShippingCity,
		order.ShippingCountry,
	)
}
