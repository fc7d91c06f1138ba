package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one append-only audit trail record.
type Entry struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Action       string
	ResourceType string
	ResourceID   uuid.UUID
	Metadata     map[string]string
	CreatedAt    time.Time
}

//go:generate mockgen -source=audit.go -destination=repository_mock.go -package=audit
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, resourceType string, resourceID uuid.UUID) ([]*Entry, error)
}

// Service writes audit entries best-effort. A failed write is logged and
// never surfaces to the operation being audited.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) LogAction(ctx context.Context, userID uuid.UUID, action, resourceType string, resourceID uuid.UUID, metadata map[string]string) {
	entry := &Entry{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		slog.Error("writing audit entry", "action", action, "resource_id", resourceID, "error", err)
	}
}

func (s *Service) List(ctx context.Context, resourceType string, resourceID uuid.UUID) ([]*Entry, error) {
	return s.repo.List(ctx, resourceType, resourceID)
}
