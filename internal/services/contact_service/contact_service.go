package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/repository"
	"psytech/internal/worker"

	"github.com/google/uuid"
)

const notifyTask = "contact_email"

type ContactNotifier interface {
	NotifyContact(ctx context.Context, contact models.ContactSubmission) error
}

type ContactService struct {
	log        *slog.Logger
	repo       repository.ContactRepository
	dispatcher worker.Dispatcher
	notifier   ContactNotifier
	now        func() time.Time
}

func NewContactService(
	log *slog.Logger,
	repo repository.ContactRepository,
	dispatcher worker.Dispatcher,
	notifier ContactNotifier,
) *ContactService {
	return &ContactService{
		log:        log,
		repo:       repo,
		dispatcher: dispatcher,
		notifier:   notifier,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a contact form submission and queues the team notification.
// Input is expected to be validated by the caller.
func (s *ContactService) Submit(ctx context.Context, in models.ContactInput) (*models.ContactSubmission, error) {
	const op = "contact_service.Submit"
	log := s.log.With(slog.String("op", op))

	contact := models.ContactSubmission{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Company:     trimmed(in.Company),
		CompanyType: strings.TrimSpace(in.CompanyType),
		Message:     strings.TrimSpace(in.Message),
		Phone:       trimmed(in.Phone),
		CreatedAt:   s.now(),
		Status:      models.ContactStatusNew,
	}

	if err := s.repo.SaveContact(ctx, contact); err != nil {
		log.Error("failed to save contact submission", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("contact submission stored",
		slog.String("contact_id", contact.ID.String()),
		slog.String("company_type", contact.CompanyType),
	)

	s.dispatcher.Enqueue(notifyTask, func(ctx context.Context) {
		if err := s.notifier.NotifyContact(ctx, contact); err != nil {
			s.log.Error("contact notification failed",
				slog.String("op", op),
				slog.String("contact_id", contact.ID.String()),
				sl.Err(err),
			)
		}
	})

	return &contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactSubmission, error) {
	const op = "contact_service.List"

	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		s.log.Error("failed to list contacts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, contactID uuid.UUID) (*models.ContactSubmission, error) {
	const op = "contact_service.Get"

	contact, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
