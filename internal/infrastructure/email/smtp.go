package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"boaz/internal/shared/config"
)

// Sender delivers subscription documents to tenants. Implementations must
// be safe to call concurrently.
type Sender interface {
	SendAttestation(to, tenantName, reference string, attachmentPath string) error
	SendPaymentConfirmation(to, tenantName, reference string) error
}

type SMTPEmailService struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		cfg:    cfg,
		dialer: dialer,
	}
}

// SendAttestation emails the housing attestation PDF to the tenant.
func (s *SMTPEmailService) SendAttestation(to, tenantName, reference string, attachmentPath string) error {
	subject := fmt.Sprintf("Votre attestation de logement — %s", reference)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Bonjour %s,</p>
			<p>Veuillez trouver ci-joint votre attestation de logement (référence %s).</p>
			<p>Conservez ce document, il vous sera demandé lors de vos démarches.</p>
			<p>Cordialement,<br>%s</p>
		</body>
		</html>
	`, tenantName, reference, s.cfg.FromName)

	plainBody := fmt.Sprintf(`Bonjour %s,

Veuillez trouver ci-joint votre attestation de logement (référence %s).

Conservez ce document, il vous sera demandé lors de vos démarches.

Cordialement,
%s
`, tenantName, reference, s.cfg.FromName)

	return s.sendEmail(to, subject, htmlBody, plainBody, attachmentPath)
}

// SendPaymentConfirmation notifies the tenant that their payment was recorded.
func (s *SMTPEmailService) SendPaymentConfirmation(to, tenantName, reference string) error {
	subject := fmt.Sprintf("Paiement reçu — %s", reference)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Bonjour %s,</p>
			<p>Nous avons bien reçu votre paiement pour la souscription %s.</p>
			<p>Vos documents seront livrés prochainement.</p>
			<p>Cordialement,<br>%s</p>
		</body>
		</html>
	`, tenantName, reference, s.cfg.FromName)

	plainBody := fmt.Sprintf(`Bonjour %s,

Nous avons bien reçu votre paiement pour la souscription %s.

Vos documents seront livrés prochainement.

Cordialement,
%s
`, tenantName, reference, s.cfg.FromName)

	return s.sendEmail(to, subject, htmlBody, plainBody, "")
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// NoopSender is used when email delivery is disabled in configuration.
type NoopSender struct{}

func (NoopSender) SendAttestation(string, string, string, string) error { return nil }
func (NoopSender) SendPaymentConfirmation(string, string, string) error { return nil }
