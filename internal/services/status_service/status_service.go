package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/repository"

	"github.com/google/uuid"
)

// listLimit caps GET /status.
const listLimit = 1000

type StatusService struct {
	log  *slog.Logger
	repo repository.StatusCheckRepository
	now  func() time.Time
}

func NewStatusService(log *slog.Logger, repo repository.StatusCheckRepository) *StatusService {
	return &StatusService{
		log:  log,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	const op = "status_service.CreateStatusCheck"
	log := s.log.With(slog.String("op", op))

	check := models.StatusCheck{
		ID:         uuid.New(),
		ClientName: clientName,
		Timestamp:  s.now(),
	}

	if err := s.repo.SaveStatusCheck(ctx, check); err != nil {
		log.Error("failed to save status check", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("status check recorded", slog.String("client_name", clientName))

	return &check, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	const op = "status_service.ListStatusChecks"

	checks, err := s.repo.ListStatusChecks(ctx, listLimit)
	if err != nil {
		s.log.Error("failed to list status checks", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return checks, nil
}
