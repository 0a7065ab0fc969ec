package usecase

import (
	"context"
	"fmt"
	"strings"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/email"
)

// ContactSender is the part of the email service the usecase needs.
type ContactSender interface {
	SendContactEmail(data email.ContactEmailData) error
	IsConfigured() bool
}

type contactUsecase struct {
	emailService ContactSender
}

func NewContactUsecase(emailService ContactSender) domain.ContactUsecase {
	return &contactUsecase{
		emailService: emailService,
	}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(req.Name),
		SenderEmail: strings.TrimSpace(req.Email),
		Subject:     strings.TrimSpace(req.Subject),
		Message:     strings.TrimSpace(req.Message),
	}

	// Binding accepts whitespace-only values.
	switch "" {
	case data.SenderName:
		return apperror.BadRequest("name is required")
	case data.SenderEmail:
		return apperror.BadRequest("email is required")
	case data.Subject:
		return apperror.BadRequest("subject is required")
	case data.Message:
		return apperror.BadRequest("message is required")
	}

	if !uc.emailService.IsConfigured() {
		return apperror.ServiceUnavailable("Contact form is temporarily unavailable")
	}

	if err := uc.emailService.SendContactEmail(data); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}
