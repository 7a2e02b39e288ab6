package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("contact message not found")
	// ErrSpam is returned for honeypot hits. Handlers answer as if the
	// message had been accepted.
	ErrSpam = errors.New("spam submission")
)

type Notifier interface {
	SendContactNotification(ctx context.Context, msg Message) (string, error)
}

type Service struct {
	repo     Repository
	location *time.Location
	notifier Notifier
	now      func() time.Time
}

// NewService accepts a nil notifier; messages are then only stored.
func NewService(repo Repository, location *time.Location, notifier Notifier) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		location: location,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Message, error) {
	if strings.TrimSpace(req.Website) != "" {
		return Message{}, ErrSpam
	}

	now := s.now().In(s.location)
	msg := Message{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Company:   strings.TrimSpace(req.Company),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Project:   strings.TrimSpace(req.Project),
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (s *Service) Notify(ctx context.Context, msg Message) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendContactNotification(ctx, msg)
	return err
}

func (s *Service) ListAdmin(ctx context.Context, filter ListFilter, limit, offset int) ([]Message, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) GetAdminByID(ctx context.Context, id string) (Message, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Message, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Message{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, strings.TrimSpace(id), status, s.now().In(s.location))
}
