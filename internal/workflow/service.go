package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/notify"
)

// Service applies application workflow operations against the store.
// Notifier and Cache are optional; a nil field skips that side effect.
type Service struct {
	DB       *database.DBinstanceStruct
	Notifier *notify.Notifier
	Cache    *listcache.Cache

	now func() time.Time
}

// NewService creates a workflow service.
func NewService(db *database.DBinstanceStruct, notifier *notify.Notifier, cache *listcache.Cache) *Service {
	return &Service{
		DB:       db,
		Notifier: notifier,
		Cache:    cache,
		now:      time.Now,
	}
}

// Get loads one application with its job and talent resolved.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Preload("Talent").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, &GatewayError{Op: "load application", Err: err}
	}
	return &app, nil
}

// Apply creates a new pending application for talent on job.
// A talent holds at most one application per job post: a prior row for the
// same pair fails with ErrDuplicateApplication, as does losing the race to a
// concurrent insert (unique index on the pair).
func (s *Service) Apply(ctx context.Context, talentID, jobID uuid.UUID, coverLetter, resumeURL string) (*model.Application, error) {
	existing := model.Application{}
	err := s.DB.WithContext(ctx).
		Where("talent_id = ? AND job_id = ?", talentID, jobID).
		First(&existing).Error
	if err == nil {
		s.notifyError(talentID, "Application failed", ErrDuplicateApplication.Error())
		return nil, ErrDuplicateApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		gwErr := &GatewayError{Op: "check existing application", Err: err}
		s.notifyError(talentID, "Application failed", FriendlyMessage(gwErr))
		return nil, gwErr
	}

	now := s.now()
	app := model.Application{
		Status:      model.ApplicationStatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
		JobID:       jobID,
		TalentID:    talentID,
		CoverLetter: coverLetter,
		ResumeURL:   resumeURL,
	}

	if err := s.DB.WithContext(ctx).Create(&app).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				// Unique index caught a concurrent insert for the same pair.
				s.notifyError(talentID, "Application failed", ErrDuplicateApplication.Error())
				return nil, ErrDuplicateApplication
			case "23503":
				gwErr := &GatewayError{Op: "create application", Err: fmt.Errorf("invalid job or talent reference: %w", err)}
				s.notifyError(talentID, "Application failed", FriendlyMessage(gwErr))
				return nil, gwErr
			}
		}
		gwErr := &GatewayError{Op: "create application", Err: err}
		s.notifyError(talentID, "Application failed", FriendlyMessage(gwErr))
		return nil, gwErr
	}

	s.invalidate()
	s.notifySuccess(talentID, "Application submitted", "Your application is pending review")

	return &app, nil
}

// RequestTransition moves an application to target on behalf of actor.
// Requesting the current status is a no-op: success, no write, no notification.
// The update is conditioned on the status read here; if another actor moved
// the application in between, the zero-row update surfaces as ErrStaleReadConflict.
func (s *Service) RequestTransition(ctx context.Context, appID uuid.UUID, target string, actor Actor) (*model.Application, error) {
	app, err := s.Get(ctx, appID)
	if err != nil {
		s.notifyError(actor.ID, "Status update failed", FriendlyMessage(err))
		return nil, err
	}

	if target == app.Status {
		return app, nil
	}

	if err := ValidateTransition(app, target, actor); err != nil {
		s.notifyError(actor.ID, "Status update failed",
			fmt.Sprintf("Cannot move application from %s to %s", app.Status, target))
		return nil, err
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	// reviewed_at is stamped exactly once, when leaving pending for reviewed.
	if app.Status == model.ApplicationStatusPending && target == model.ApplicationStatusReviewed {
		updates["reviewed_at"] = now
	}

	res := s.DB.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND status = ?", app.ID, app.Status).
		Updates(updates)
	if res.Error != nil {
		gwErr := &GatewayError{Op: "update application status", Err: res.Error}
		s.notifyError(actor.ID, "Status update failed", FriendlyMessage(gwErr))
		return nil, gwErr
	}
	if res.RowsAffected == 0 {
		s.notifyError(actor.ID, "Status update failed", ErrStaleReadConflict.Error())
		return nil, ErrStaleReadConflict
	}

	updated, err := s.Get(ctx, appID)
	if err != nil {
		s.notifyError(actor.ID, "Status update failed", FriendlyMessage(err))
		return nil, err
	}

	s.invalidate()
	s.notifySuccess(actor.ID, "Application "+target,
		fmt.Sprintf("Application for %q is now %s", updated.Job.Title, target))

	return updated, nil
}

// Withdraw is the talent-initiated transition to withdrawn.
func (s *Service) Withdraw(ctx context.Context, appID uuid.UUID, actor Actor) (*model.Application, error) {
	return s.RequestTransition(ctx, appID, model.ApplicationStatusWithdrawn, actor)
}

// Delete removes an application outside the status workflow. Only the
// applying talent or the company owning the job may delete.
func (s *Service) Delete(ctx context.Context, appID uuid.UUID, actor Actor) error {
	app, err := s.Get(ctx, appID)
	if err != nil {
		return err
	}

	owns := (actor.Role == model.RoleTalent && actor.ID == app.TalentID) ||
		(actor.Role == model.RoleCompany && actor.ID == app.Job.CompanyID) ||
		actor.Role == model.RoleAdmin
	if !owns {
		return ErrInvalidTransition
	}

	if err := s.DB.WithContext(ctx).Delete(&model.Application{}, "id = ?", appID).Error; err != nil {
		return &GatewayError{Op: "delete application", Err: err}
	}

	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if s.Cache != nil {
		s.Cache.InvalidateKind(listcache.KindApplications)
	}
}

func (s *Service) notifySuccess(userID uuid.UUID, title, body string) {
	if s.Notifier != nil {
		s.Notifier.Success(userID, title, body)
	}
}

func (s *Service) notifyError(userID uuid.UUID, title, body string) {
	if s.Notifier != nil {
		s.Notifier.Error(userID, title, body)
	}
}
