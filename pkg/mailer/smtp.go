package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
)

// SMTPProvider sends through a plain SMTP relay, for deployments without a
// transactional email account.
type SMTPProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewSMTPProvider(host string, port int, username, password, fromEmail, fromName string) *SMTPProvider {
	return &SMTPProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, request *MailRequest) (*MailResponse, error) {
	if p.username == "" || p.password == "" {
		err := fmt.Errorf("smtp credentials not configured")
		return &MailResponse{Status: "failed", Error: err.Error()}, err
	}

	fromEmail := request.From
	if fromEmail == "" {
		fromEmail = p.fromEmail
	}
	fromName := request.FromName
	if fromName == "" {
		fromName = p.fromName
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		fromName, fromEmail, request.To, request.Subject, request.HTML))

	auth := smtp.PlainAuth("", p.username, p.password, p.host)
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	if err := smtp.SendMail(addr, auth, fromEmail, []string{request.To}, message); err != nil {
		return &MailResponse{Status: "failed", Error: err.Error()}, err
	}

	// net/smtp has no provider message id, so mint one for the receipt.
	return &MailResponse{
		MessageID: uuid.NewString(),
		Status:    "sent",
	}, nil
}
