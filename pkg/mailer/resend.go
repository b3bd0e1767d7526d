package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type ResendProvider struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

func NewResendProvider(apiKey, fromEmail, fromName string) *ResendProvider {
	return &ResendProvider{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (p *ResendProvider) Send(ctx context.Context, request *MailRequest) (*MailResponse, error) {
	params := &resend.SendEmailRequest{
		From:    p.formatFrom(request),
		To:      []string{request.To},
		Subject: request.Subject,
		Html:    request.HTML,
	}

	sent, err := p.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return &MailResponse{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &MailResponse{
		MessageID: sent.Id,
		Status:    "sent",
	}, nil
}

func (p *ResendProvider) formatFrom(request *MailRequest) string {
	fromEmail := request.From
	if fromEmail == "" {
		fromEmail = p.fromEmail
	}
	fromName := request.FromName
	if fromName == "" {
		fromName = p.fromName
	}
	if fromName == "" {
		return fromEmail
	}
	return fmt.Sprintf("%s <%s>", fromName, fromEmail)
}
