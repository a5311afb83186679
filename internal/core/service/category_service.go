package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

const resourceCategory = "category"

// CategoryService enforces the category invariants around the repository:
// a referenced category cannot be deleted and the last one cannot be deleted.
type CategoryService struct {
	repo   ports.CategoryRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CategoryService {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &CategoryService{repo: repo, audit: audit, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *CategoryService) Create(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	title, description, err := normalizeCategory(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, title, description)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditCreate, created.ID)
	s.logger.Info().Int64("category_id", created.ID).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, in ports.CategoryInput) (*domain.Category, error) {
	title, description, err := normalizeCategory(in)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, title, description)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditUpdate, updated.ID)
	return updated, nil
}

// Delete removes a category. The floor check runs before the reference
// check, so deleting the only category always reports ErrLastCategory.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*domain.Category, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkDeletable(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteGuarded(ctx, id)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		// The conditional delete matched nothing although the checks
		// passed: someone changed the table in between. Re-classify.
		if _, ferr := s.repo.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		if cerr := s.checkDeletable(ctx, id); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditDelete, deleted.ID)
	s.logger.Info().Int64("category_id", deleted.ID).Msg("category deleted")
	return deleted, nil
}

func (s *CategoryService) checkDeletable(ctx context.Context, id int64) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total <= 1 {
		return domain.ErrLastCategory
	}

	refs, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrCategoryInUse
	}
	return nil
}

func (s *CategoryService) record(ctx context.Context, action domain.AuditAction, id int64) {
	recordAudit(ctx, s.audit, s.logger, resourceCategory, action, id)
}

func normalizeCategory(in ports.CategoryInput) (string, string, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return "", "", domain.InvalidInput("title is required")
	}
	if description == "" {
		return "", "", domain.InvalidInput("description is required")
	}
	return title, description, nil
}

// recordAudit stores an audit entry. Failures are logged and never fail the
// mutation that already happened.
func recordAudit(ctx context.Context, audit ports.AuditRecorder, log zerolog.Logger, resource string, action domain.AuditAction, id int64) {
	actor, _ := domain.AccountIDFrom(ctx)
	entry := domain.AuditEntry{
		Resource:   resource,
		Action:     action,
		ResourceID: id,
		ActorID:    actor,
		At:         time.Now().UTC(),
	}
	if err := audit.Record(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("resource", resource).
			Str("action", string(action)).
			Int64("resource_id", id).
			Msg("failed to record audit entry")
	}
}

// NopAuditRecorder discards audit entries.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, domain.AuditEntry) error { return nil }
