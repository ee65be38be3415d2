package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Plataforma EAD <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendEnrollmentWelcomeEmail notifies a student of a new enrollment.
func SendEnrollmentWelcomeEmail(email, name, courseName string) {
	subject := "Matrícula confirmada: " + courseName
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #21265f;">Matrícula confirmada</h2>
		<p>Olá %s,</p>
		<p>Sua matrícula no curso <strong>%s</strong> foi confirmada.</p>
		<p>Bons estudos!</p>
		<hr style="border: 1px solid #eee; margin: 20px 0;">
		<p style="font-size: 12px; color: #666;">Esta é uma mensagem automática da plataforma.</p>
	</div>
</body>
</html>`, name, courseName)

	go SendEmail([]string{email}, subject, body)
}

// SendCertificateIssuedEmail notifies a student that a certificate is ready.
func SendCertificateIssuedEmail(email, name, courseName, documentURL string) {
	subject := "Seu certificado está disponível"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #21265f;">Certificado emitido</h2>
		<p>Olá %s,</p>
		<p>Seu certificado do curso <strong>%s</strong> foi emitido.</p>
		<div style="margin: 30px 0;">
			<a href="%s" style="background-color: #21265f; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Baixar certificado</a>
		</div>
		<hr style="border: 1px solid #eee; margin: 20px 0;">
		<p style="font-size: 12px; color: #666;">Esta é uma mensagem automática da plataforma.</p>
	</div>
</body>
</html>`, name, courseName, documentURL)

	go SendEmail([]string{email}, subject, body)
}
