package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendFriendInviteEmail notifies a visitor that a friend invited them to an
// experience slot. Sending is best-effort; without SMTP config it degrades to
// a mock log line so local development keeps working.
func SendFriendInviteEmail(recipientEmail, inviterName, experienceTitle, slotDate, message string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] invite to:%s from:%s experience:%s date:%s",
			recipientEmail, inviterName, experienceTitle, slotDate)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	inviterName = safe(inviterName)
	experienceTitle = safe(experienceTitle)
	slotDate = safe(slotDate)
	message = safe(message)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("%s invited you to %s", inviterName, experienceTitle)
	boundary := "----=_MYPLAN_INVITE_BOUNDARY"

	personalNote := ""
	if message != "" {
		personalNote = fmt.Sprintf("\nThey added a note:\n%s\n", message)
	}

	plainBody := fmt.Sprintf(
		"Hi,\n\n"+
			"%s invited you to join them at \"%s\" on %s.\n"+
			"%s\n"+
			"Log in to MyPlan to accept or decline the invitation from your calendar.\n",
		inviterName, experienceTitle, slotDate, personalNote,
	)

	noteHTML := ""
	if message != "" {
		noteHTML = fmt.Sprintf("<p><em>%s</em></p>", message)
	}

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Invitation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>You're invited</h2>
    <p><strong>%s</strong> invited you to join them at <strong>%s</strong> on %s.</p>
    %s
    <p>Log in to MyPlan to accept or decline the invitation from your calendar.</p>
  </div>
</div>
</body>
</html>`,
		inviterName, experienceTitle, slotDate, noteHTML,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send invite email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Invite email sent to %s", recipientEmail)
	return nil
}
