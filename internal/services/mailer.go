package services

import (
	"encoding/base64"
	"fmt"
	"log"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/wneessen/go-mail"

	"orchard_back_end/internal/config"
	"orchard_back_end/internal/models"
)

// MailService sends order lifecycle mail over SMTP. Confirmation mail embeds
// an EPC (SEPA) payment QR for the order total.
type MailService struct{}

func NewMailService() *MailService {
	return &MailService{}
}

func (m *MailService) SendOrderConfirmation(user models.User, order models.Order) {
	qr, err := generateSepaQR(
		config.Get("COMPANY_IBAN", "BE12345678901234"),
		config.Get("COMPANY_BIC", "KREDBEBB"),
		config.Get("COMPANY_NAME", "Orchard SRL"),
		fmt.Sprintf("ORDER-%s", order.ID.Hex()),
		order.TotalPrice,
	)
	if err != nil {
		log.Println("⚠️ Failed to generate payment QR:", err)
		qr = ""
	}

	subject := fmt.Sprintf("Order confirmation #%s", order.ID.Hex())
	if err := m.send(user.Email, subject, orderConfirmationHTML(user, order, qr)); err != nil {
		log.Println("❌ Failed to send confirmation email:", err)
	}
}

func (m *MailService) SendOrderCancellation(user models.User, order models.Order) {
	subject := fmt.Sprintf("Order cancelled #%s", order.ID.Hex())
	if err := m.send(user.Email, subject, orderCancellationHTML(user, order)); err != nil {
		log.Println("❌ Failed to send cancellation email:", err)
	}
}

func (m *MailService) send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(config.Get("SMTP_FROM", "noreply@orchard.example")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port, err := strconv.Atoi(config.Get("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	client, err := mail.NewClient(config.Get("SMTP_HOST", "localhost"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.Get("SMTP_USERNAME", "")),
		mail.WithPassword(config.Get("SMTP_PASSWORD", "")),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// generateSepaQR renders a basic EPC payment QR as a base64 PNG data URI.
func generateSepaQR(iban, bic, name, ref string, amount float64) (string, error) {
	sepa := fmt.Sprintf(`BCD
001
1
SCT
%s
%s
%s
EUR%.2f
%s`, bic, name, iban, amount, ref)

	png, err := qrcode.Encode(sepa, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func orderConfirmationHTML(user models.User, order models.Order, qrDataURI string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
			</tr>`, item.ProductTitle, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrHTML := ""
	if qrDataURI != "" {
		qrHTML = fmt.Sprintf(`
			<h3>Pay by bank transfer</h3>
			<p>Scan this QR code with your banking app:</p>
			<img src="%s" alt="Payment QR" width="256" height="256">`, qrDataURI)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order is confirmed</h2>
		<p>Hi %s,</p>
		<p>Thank you for your order. Here is a summary:</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Quantity</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>
		%s

		<p style="margin-top: 30px; color: #555;">
			Best regards,<br>
			<strong>The Orchard team</strong>
		</p>
	</div>
</body>
</html>`, user.UserName, itemsHTML, order.TotalPrice, qrHTML)
}

func orderCancellationHTML(user models.User, order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Order cancelled</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order was cancelled</h2>
		<p>Hi %s,</p>
		<p>Order <strong>#%s</strong> has been cancelled and any reserved items were returned to stock.</p>
		<p style="margin-top: 30px; color: #555;">
			Best regards,<br>
			<strong>The Orchard team</strong>
		</p>
	</div>
</body>
</html>`, user.UserName, order.ID.Hex())
}
