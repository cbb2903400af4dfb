package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ClosingSummary is the data rendered into the end-of-day summary email
// sent to the owner after a closing is submitted.
type ClosingSummary struct {
	Branch       string
	Date         string
	ClosingID    string
	GrossSale    string
	CashSale     string
	CardSale     string
	DeliverySale string
	ExpenseCount int
	ExpenseTotal string
	CCTips       string
	ExpectedCash string
}

// SendClosingSummary emails the daily closing summary to the owner.
func (s *EmailService) SendClosingSummary(toEmail string, summary *ClosingSummary) error {
	htmlContent, err := s.renderClosingSummary(summary)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Daily Closing %s - %s (%s)", summary.ClosingID, summary.Branch, summary.Date)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderClosingSummary renders the closing summary email template
func (s *EmailService) renderClosingSummary(summary *ClosingSummary) (string, error) {
	tmpl, err := template.New("closing_summary").Parse(closingSummaryTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, summary); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// closingSummaryTemplate is the HTML template for the owner's daily summary
const closingSummaryTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Daily Closing Summary</title>
</head>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 520px; margin: 0 auto;">
    <h2 style="border-bottom: 2px solid #222; padding-bottom: 8px;">KLAP — {{.Branch}}</h2>
    <p>Closing <strong>{{.ClosingID}}</strong> for {{.Date}} has been submitted.</p>
    <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 4px 0;">Gross Sale</td><td style="text-align: right;">{{.GrossSale}}</td></tr>
        <tr><td style="padding: 4px 0;">Cash Sale</td><td style="text-align: right;">{{.CashSale}}</td></tr>
        <tr><td style="padding: 4px 0;">Card Sale</td><td style="text-align: right;">{{.CardSale}}</td></tr>
        <tr><td style="padding: 4px 0;">Delivery (Foodpanda)</td><td style="text-align: right;">{{.DeliverySale}}</td></tr>
        <tr><td style="padding: 4px 0;">Expenses ({{.ExpenseCount}} items)</td><td style="text-align: right;">({{.ExpenseTotal}})</td></tr>
        <tr><td style="padding: 4px 0;">CC Tips paid out</td><td style="text-align: right;">({{.CCTips}})</td></tr>
        <tr style="border-top: 2px solid #222; font-weight: bold;">
            <td style="padding: 8px 0;">Cash in Hand</td><td style="text-align: right;">{{.ExpectedCash}}</td>
        </tr>
    </table>
    <p style="font-size: 12px; color: #777; margin-top: 24px;">Sent automatically by the KLAP closing system.</p>
</body>
</html>
`
