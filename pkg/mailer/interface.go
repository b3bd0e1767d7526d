package mailer

import "context"

type MailProvider interface {
	Send(ctx context.Context, request *MailRequest) (*MailResponse, error)
}

type MailRequest struct {
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	From     string `json:"from"`
	FromName string `json:"from_name"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
}

// MailResponse is the delivery receipt for one accepted message. Acceptance
// by the provider, not delivery to the inbox.
type MailResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
