package sendgrid

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// Send delivers one message through the v3 mail send endpoint.
func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))
	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

// Probe checks that the API key is accepted by reading its scopes. An empty
// host means the public SendGrid API.
func Probe(apiKey, host string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		request := sendgrid.GetRequest(apiKey, "/v3/scopes", host)
		request.Method = "GET"

		response, err := sendgrid.MakeRequestWithContext(ctx, request)
		if err != nil {
			return fmt.Errorf("reaching sendgrid: %w", err)
		}

		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid rejected the api key, status code: %d", response.StatusCode)
		}

		return nil
	}
}
