package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "AI Study Planner"
	}

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendOTPEmail delivers a verification code to the given address
func (s *EmailService) SendOTPEmail(toEmail, otp string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toEmail, toEmail)
	subject := "Your Verification Code - AI Study Planner"
	plainContent := fmt.Sprintf("Use the following code to verify your account: %s. This code will expire shortly. Do not share it with anyone.", otp)
	htmlContent := fmt.Sprintf("<p>Use the following code to verify your account:</p><p style=\"font-size: 32px; font-weight: bold; letter-spacing: 5px;\">%s</p><p>This code will expire shortly. Do not share it with anyone.</p>", otp)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send verification email to %s: %d", toEmail, response.StatusCode)
	}
	return nil
}
