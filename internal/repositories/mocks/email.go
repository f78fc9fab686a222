package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func NewEmailService(t testingT) *EmailService {
	m := &EmailService{}
	register(&m.Mock, t)

	return m
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *EmailService) GetSendGridClient() *sendgrid.Client {
	client, _ := m.Called().Get(0).(*sendgrid.Client)

	return client
}
