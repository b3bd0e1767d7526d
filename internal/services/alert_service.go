package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"deadyet/internal/models"
	"deadyet/internal/utils"
	"deadyet/pkg/logger"
	"deadyet/pkg/mailer"
	"deadyet/pkg/sms"
)

type AlertService interface {
	// Dispatch sends one alert per contact, fanning out and waiting for all
	// attempts. Mixed outcomes come back in the report, not as an error; an
	// empty contact list is rejected with utils.ErrInvalidInput. lastCheckIn
	// is a display string and may be empty when the user never checked in.
	Dispatch(ctx context.Context, userName, lastCheckIn string, contacts []models.AlertContact) (*models.DispatchReport, error)
}

type alertService struct {
	mail   mailer.MailProvider
	sms    sms.SMSProvider
	logger *logger.Logger
}

func NewAlertService(mail mailer.MailProvider, smsProvider sms.SMSProvider, logger *logger.Logger) AlertService {
	return &alertService{
		mail:   mail,
		sms:    smsProvider,
		logger: logger,
	}
}

var alertEmailTemplate = template.Must(template.New("alert_email").Parse(`<div style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; padding: 20px 0; border-bottom: 2px solid #ff6b6b;">
    <h1 style="color: #ff6b6b; margin: 0; font-size: 28px;">Emergency Notice</h1>
  </div>
  <div style="padding: 30px 20px;">
    <p style="font-size: 16px;">Hello {{.ContactName}},</p>
    <div style="padding: 25px; margin: 25px 0; border-left: 4px solid #ff6b6b; background: #fff4f4;">
      <p style="margin: 0; font-size: 18px; color: #ff6b6b; font-weight: bold;">
        {{.UserName}} has not checked in to DeadYet for over 48 hours
      </p>
      {{if .LastCheckIn}}<p style="margin: 15px 0 0; color: #888; font-size: 14px;">Last check-in: {{.LastCheckIn}}</p>{{end}}
    </div>
    <p style="font-size: 15px; color: #555; line-height: 1.8;">
      You are receiving this because {{.UserName}} listed you as an emergency
      contact. Please try to reach {{.UserName}} through other channels to
      confirm they are safe.
    </p>
    <div style="padding: 20px; margin-top: 25px; background: #f4f4f4; border-radius: 8px;">
      <p style="margin: 0; color: #888; font-size: 13px;">
        This is an automated message from the DeadYet emergency notification system.
      </p>
    </div>
  </div>
  <div style="text-align: center; padding: 20px; border-top: 1px solid #ddd; color: #999; font-size: 12px;">
    <p style="margin: 0;">DeadYet — a daily check-in, so the people who care about you can rest easy</p>
  </div>
</div>`))

type alertEmailData struct {
	ContactName string
	UserName    string
	LastCheckIn string
}

func (s *alertService) Dispatch(ctx context.Context, userName, lastCheckIn string, contacts []models.AlertContact) (*models.DispatchReport, error) {
	if len(contacts) == 0 {
		return nil, fmt.Errorf("contact list is empty: %w", utils.ErrInvalidInput)
	}

	if userName == "" {
		userName = "the user"
	}

	subject := fmt.Sprintf("Emergency notice: %s has not checked in for over 48 hours", userName)

	// Fan-out, join-all: every contact gets an independent attempt and one
	// failure never cancels the siblings.
	results := make([]models.ContactResult, len(contacts))
	var wg sync.WaitGroup

	for i, contact := range contacts {
		wg.Add(1)
		go func(i int, contact models.AlertContact) {
			defer wg.Done()
			results[i] = s.sendToContact(ctx, contact, userName, subject, lastCheckIn)
		}(i, contact)
	}

	wg.Wait()

	report := &models.DispatchReport{Contacts: results}
	for _, result := range results {
		if result.Sent {
			report.Sent++
		} else {
			report.Failed++
		}
	}

	s.logger.LogDispatchEvent(nil, len(contacts), report.Sent, report.Failed)

	return report, nil
}

func (s *alertService) sendToContact(ctx context.Context, contact models.AlertContact, userName, subject, lastCheckInDisplay string) models.ContactResult {
	result := models.ContactResult{
		Name:  contact.Name,
		Email: contact.Email,
	}

	sendCtx, cancel := context.WithTimeout(ctx, utils.NotificationTimeout)
	defer cancel()

	var body bytes.Buffer
	err := alertEmailTemplate.Execute(&body, alertEmailData{
		ContactName: contact.Name,
		UserName:    userName,
		LastCheckIn: lastCheckInDisplay,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	response, err := s.mail.Send(sendCtx, &mailer.MailRequest{
		To:      contact.Email,
		ToName:  contact.Name,
		Subject: subject,
		HTML:    body.String(),
	})
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Sent = true
		result.ReceiptID = response.MessageID
	}

	// SMS is a secondary channel; its failure alone never fails the contact.
	if s.sms != nil && contact.Phone != "" {
		s.sendSMS(sendCtx, contact, userName, &result)
	}

	return result
}

func (s *alertService) sendSMS(ctx context.Context, contact models.AlertContact, userName string, result *models.ContactResult) {
	message := fmt.Sprintf("DeadYet emergency notice: %s has not checked in for over 48 hours. Please check on them. An email with details was sent to %s.", userName, contact.Email)

	_, err := s.sms.SendSMS(ctx, &sms.SMSRequest{
		To:      contact.Phone,
		Message: message,
	})
	if err != nil {
		result.SMSError = err.Error()
		return
	}

	result.SMSSent = true
}
