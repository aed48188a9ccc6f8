package service

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"clubhub/internal/errors"
	"clubhub/internal/metrics"
	"clubhub/internal/model"
	"clubhub/internal/repository"
)

// RegistrationInfo is the read-only projection of an event's registration
// state. IsFull and DeadlinePassed are derived, never stored.
type RegistrationInfo struct {
	Enabled        bool       `json:"enabled"`
	CurrentCount   int64      `json:"current_count"`
	Max            *int       `json:"max_registrations"`
	Deadline       *time.Time `json:"registration_deadline"`
	IsFull         bool       `json:"is_full"`
	DeadlinePassed bool       `json:"deadline_passed"`
}

// Roster is the admin view of an event's registrations.
type Roster struct {
	Registrations   []model.EventRegistration `json:"registrations"`
	RegisteredCount int64                     `json:"registered_count"`
}

// RegistrationService enforces the event registration consistency rules.
type RegistrationService interface {
	Register(ctx context.Context, announcementID, userID uint) error
	Unregister(ctx context.Context, announcementID, userID uint) error
	Status(ctx context.Context, announcementID, userID uint) (bool, error)
	Info(ctx context.Context, announcementID uint) (*RegistrationInfo, error)
	Roster(ctx context.Context, announcementID uint, requester *model.User) (*Roster, error)
	ExportCSV(ctx context.Context, announcementID uint, requester *model.User) ([]byte, error)
}

type registrationService struct {
	regRepo repository.RegistrationRepository
	annRepo repository.AnnouncementRepository
	now     func() time.Time
}

// NewRegistrationService builds a RegistrationService.
func NewRegistrationService(regRepo repository.RegistrationRepository, annRepo repository.AnnouncementRepository) RegistrationService {
	return &registrationService{
		regRepo: regRepo,
		annRepo: annRepo,
		now:     time.Now,
	}
}

// Register records the user's intent to attend. The whole check-then-write
// sequence runs in one transaction against a locked announcement row, so two
// registrations racing for the last slot serialize instead of both passing
// the capacity count.
func (s *registrationService) Register(ctx context.Context, announcementID, userID uint) error {
	err := s.regRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.RegistrationRepository) error {
		ann, err := repo.FindAnnouncementForUpdate(ctx, announcementID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrEventNotFound
			}
			return fmt.Errorf("find announcement: %w", err)
		}
		if !ann.Active {
			return errors.ErrEventNotFound
		}
		if !ann.RegistrationEnabled {
			return errors.ErrRegistrationNotEnabled
		}
		if ann.RegistrationDeadline != nil && s.now().After(*ann.RegistrationDeadline) {
			return errors.ErrDeadlinePassed
		}

		existing, err := repo.FindByAnnouncementAndUser(ctx, announcementID, userID)
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find registration: %w", err)
		}
		if existing != nil && existing.Status == model.RegistrationStatusRegistered {
			return errors.ErrAlreadyRegistered
		}

		if ann.MaxRegistrations != nil {
			count, err := repo.CountRegistered(ctx, announcementID)
			if err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if count >= int64(*ann.MaxRegistrations) {
				return errors.ErrEventFull
			}
		}

		// one row per (announcement, user): re-registration flips the
		// cancelled row back instead of inserting a duplicate
		if existing != nil {
			return repo.UpdateStatus(ctx, existing.ID, model.RegistrationStatusRegistered)
		}
		return repo.Create(ctx, &model.EventRegistration{
			AnnouncementID: announcementID,
			UserID:         userID,
			Status:         model.RegistrationStatusRegistered,
		})
	})

	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("registered").Inc()
	case stderrors.Is(err, errors.ErrEventFull):
		metrics.RegistrationsTotal.WithLabelValues("full").Inc()
	case stderrors.Is(err, errors.ErrDeadlinePassed):
		metrics.RegistrationsTotal.WithLabelValues("deadline").Inc()
	default:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
	}
	return err
}

// Unregister cancels an active registration. Calling it again fails cleanly
// with ErrRegistrationNotFound rather than double-cancelling.
func (s *registrationService) Unregister(ctx context.Context, announcementID, userID uint) error {
	reg, err := s.regRepo.FindByAnnouncementAndUser(ctx, announcementID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRegistrationNotFound
		}
		return fmt.Errorf("find registration: %w", err)
	}
	if reg.Status != model.RegistrationStatusRegistered {
		return errors.ErrRegistrationNotFound
	}
	return s.regRepo.UpdateStatus(ctx, reg.ID, model.RegistrationStatusCancelled)
}

// Status reports whether the user currently holds an active registration.
func (s *registrationService) Status(ctx context.Context, announcementID, userID uint) (bool, error) {
	reg, err := s.regRepo.FindByAnnouncementAndUser(ctx, announcementID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find registration: %w", err)
	}
	return reg.Status == model.RegistrationStatusRegistered, nil
}

// Info returns the public registration projection for an event.
func (s *registrationService) Info(ctx context.Context, announcementID uint) (*RegistrationInfo, error) {
	ann, err := s.loadAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	count, err := s.regRepo.CountRegistered(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	info := &RegistrationInfo{
		Enabled:      ann.RegistrationEnabled,
		CurrentCount: count,
		Max:          ann.MaxRegistrations,
		Deadline:     ann.RegistrationDeadline,
	}
	if ann.MaxRegistrations != nil && count >= int64(*ann.MaxRegistrations) {
		info.IsFull = true
	}
	if ann.RegistrationDeadline != nil && s.now().After(*ann.RegistrationDeadline) {
		info.DeadlinePassed = true
	}
	return info, nil
}

// Roster returns all registration rows for the event, any status, most
// recent first. Only the owning club's admin may see it.
func (s *registrationService) Roster(ctx context.Context, announcementID uint, requester *model.User) (*Roster, error) {
	ann, err := s.loadAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if !requester.IsClubAdmin() || *requester.ClubID != ann.ClubID {
		return nil, errors.ErrForbidden
	}

	regs, err := s.regRepo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	// updated_at is stamped on every status flip, so it is the time of the
	// latest registration action, not the original sign-up
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].UpdatedAt.After(regs[j].UpdatedAt)
	})
	count, err := s.regRepo.CountRegistered(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	return &Roster{Registrations: regs, RegisteredCount: count}, nil
}

// ExportCSV renders the roster as CSV, most recent registration first.
func (s *registrationService) ExportCSV(ctx context.Context, announcementID uint, requester *model.User) ([]byte, error) {
	roster, err := s.Roster(ctx, announcementID, requester)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Email", "Roll Number", "Branch", "Status", "Registered At"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, reg := range roster.Registrations {
		name, email, roll, branch := "", "", "", ""
		if reg.User != nil {
			name, email, roll, branch = reg.User.Name, reg.User.Email, reg.User.RollNumber, reg.User.Branch
		}
		record := []string{
			name,
			email,
			roll,
			branch,
			reg.Status,
			reg.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *registrationService) loadAnnouncement(ctx context.Context, id uint) (*model.Announcement, error) {
	ann, err := s.annRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	if !ann.Active {
		return nil, errors.ErrEventNotFound
	}
	return ann, nil
}
