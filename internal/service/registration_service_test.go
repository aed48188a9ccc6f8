package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"clubhub/internal/errors"
	"clubhub/internal/model"
)

func newTestRegistrationService(regRepo *MockRegistrationRepository, annRepo *MockAnnouncementRepository, now time.Time) RegistrationService {
	svc := NewRegistrationService(regRepo, annRepo).(*registrationService)
	svc.now = func() time.Time { return now }
	return svc
}

func intPtr(v int) *int { return &v }

func TestRegistrationService_Register(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Second)

	openEvent := func(max *int, deadline *time.Time) *model.Announcement {
		return &model.Announcement{
			ID:                   1,
			ClubID:               1,
			Active:               true,
			RegistrationEnabled:  true,
			RegistrationDeadline: deadline,
			MaxRegistrations:     max,
		}
	}

	tests := []struct {
		name          string
		setupMock     func(*MockRegistrationRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(intPtr(10), &future), nil)
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CountRegistered", mock.Anything, uint(1)).Return(int64(3), nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.EventRegistration")).Return(nil)
			},
		},
		{
			name: "last slot still registers",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(intPtr(2), nil), nil)
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CountRegistered", mock.Anything, uint(1)).Return(int64(1), nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.EventRegistration")).Return(nil)
			},
		},
		{
			name: "event full",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(intPtr(2), nil), nil)
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CountRegistered", mock.Anything, uint(1)).Return(int64(2), nil)
			},
			expectedError: errors.ErrEventFull,
		},
		{
			name: "deadline passed",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(nil, &past), nil)
			},
			expectedError: errors.ErrDeadlinePassed,
		},
		{
			name: "registration not enabled",
			setupMock: func(m *MockRegistrationRepository) {
				ann := openEvent(nil, nil)
				ann.RegistrationEnabled = false
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(ann, nil)
			},
			expectedError: errors.ErrRegistrationNotEnabled,
		},
		{
			name: "already registered",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(nil, nil), nil)
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(&model.EventRegistration{
					ID:     9,
					Status: model.RegistrationStatusRegistered,
				}, nil)
			},
			expectedError: errors.ErrAlreadyRegistered,
		},
		{
			name: "re-registration flips the cancelled row",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(openEvent(intPtr(10), nil), nil)
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(&model.EventRegistration{
					ID:     9,
					Status: model.RegistrationStatusCancelled,
				}, nil)
				m.On("CountRegistered", mock.Anything, uint(1)).Return(int64(0), nil)
				m.On("UpdateStatus", mock.Anything, uint(9), model.RegistrationStatusRegistered).Return(nil)
			},
		},
		{
			name: "unknown event",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrEventNotFound,
		},
		{
			name: "deleted event",
			setupMock: func(m *MockRegistrationRepository) {
				ann := openEvent(nil, nil)
				ann.Active = false
				m.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(ann, nil)
			},
			expectedError: errors.ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regRepo := new(MockRegistrationRepository)
			tt.setupMock(regRepo)

			svc := newTestRegistrationService(regRepo, new(MockAnnouncementRepository), now)
			err := svc.Register(context.Background(), 1, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				regRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			regRepo.AssertExpectations(t)
		})
	}
}

func TestRegistrationService_Register_DeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ann := func() *model.Announcement {
		return &model.Announcement{
			ID:                   1,
			Active:               true,
			RegistrationEnabled:  true,
			RegistrationDeadline: &deadline,
		}
	}

	// exactly at the deadline still counts as open
	regRepo := new(MockRegistrationRepository)
	regRepo.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(ann(), nil)
	regRepo.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
	regRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.EventRegistration")).Return(nil)

	svc := newTestRegistrationService(regRepo, new(MockAnnouncementRepository), deadline)
	assert.NoError(t, svc.Register(context.Background(), 1, 5))

	// one second later it is closed
	regRepo = new(MockRegistrationRepository)
	regRepo.On("FindAnnouncementForUpdate", mock.Anything, uint(1)).Return(ann(), nil)

	svc = newTestRegistrationService(regRepo, new(MockAnnouncementRepository), deadline.Add(time.Second))
	assert.ErrorIs(t, svc.Register(context.Background(), 1, 5), errors.ErrDeadlinePassed)
}

func TestRegistrationService_Unregister(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockRegistrationRepository)
		expectedError error
	}{
		{
			name: "successful cancel",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(&model.EventRegistration{
					ID:     9,
					Status: model.RegistrationStatusRegistered,
				}, nil)
				m.On("UpdateStatus", mock.Anything, uint(9), model.RegistrationStatusCancelled).Return(nil)
			},
		},
		{
			name: "never registered",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrRegistrationNotFound,
		},
		{
			name: "already cancelled",
			setupMock: func(m *MockRegistrationRepository) {
				m.On("FindByAnnouncementAndUser", mock.Anything, uint(1), uint(5)).Return(&model.EventRegistration{
					ID:     9,
					Status: model.RegistrationStatusCancelled,
				}, nil)
			},
			expectedError: errors.ErrRegistrationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regRepo := new(MockRegistrationRepository)
			tt.setupMock(regRepo)

			svc := newTestRegistrationService(regRepo, new(MockAnnouncementRepository), time.Now())
			err := svc.Unregister(context.Background(), 1, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			regRepo.AssertExpectations(t)
		})
	}
}

func TestRegistrationService_Info_DerivesFullAndDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	annRepo := new(MockAnnouncementRepository)
	annRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Announcement{
		ID:                   1,
		Active:               true,
		RegistrationEnabled:  true,
		RegistrationDeadline: &past,
		MaxRegistrations:     intPtr(2),
	}, nil)

	regRepo := new(MockRegistrationRepository)
	regRepo.On("CountRegistered", mock.Anything, uint(1)).Return(int64(2), nil)

	svc := newTestRegistrationService(regRepo, annRepo, now)
	info, err := svc.Info(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, info.Enabled)
	assert.True(t, info.IsFull)
	assert.True(t, info.DeadlinePassed)
	assert.Equal(t, int64(2), info.CurrentCount)
}

func TestRegistrationService_Roster_Authorization(t *testing.T) {
	adminRole := model.RoleClubAdmin
	studentRole := model.RoleStudent
	clubOne := uint(1)
	clubTwo := uint(2)

	tests := []struct {
		name          string
		requester     *model.User
		expectedError error
	}{
		{
			name:      "owning club admin sees the roster",
			requester: &model.User{ID: 1, Role: &adminRole, ClubID: &clubOne},
		},
		{
			name:          "admin of another club is forbidden",
			requester:     &model.User{ID: 2, Role: &adminRole, ClubID: &clubTwo},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "student is forbidden",
			requester:     &model.User{ID: 3, Role: &studentRole},
			expectedError: errors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annRepo := new(MockAnnouncementRepository)
			annRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Announcement{
				ID:     1,
				ClubID: 1,
				Active: true,
			}, nil)

			regRepo := new(MockRegistrationRepository)
			if tt.expectedError == nil {
				regRepo.On("ListByAnnouncement", mock.Anything, uint(1)).Return([]model.EventRegistration{}, nil)
				regRepo.On("CountRegistered", mock.Anything, uint(1)).Return(int64(0), nil)
			}

			svc := newTestRegistrationService(regRepo, annRepo, time.Now())
			roster, err := svc.Roster(context.Background(), 1, tt.requester)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, roster)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, roster)
			}
		})
	}
}

func TestRegistrationService_Roster_MostRecentActionFirst(t *testing.T) {
	adminRole := model.RoleClubAdmin
	clubOne := uint(1)
	admin := &model.User{ID: 1, Role: &adminRole, ClubID: &clubOne}

	base := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	annRepo := new(MockAnnouncementRepository)
	annRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Announcement{
		ID:     1,
		ClubID: 1,
		Active: true,
	}, nil)

	// row 10 is the oldest sign-up but was re-registered last, so its
	// status flip stamped the latest updated_at and it leads the roster
	regRepo := new(MockRegistrationRepository)
	regRepo.On("ListByAnnouncement", mock.Anything, uint(1)).Return([]model.EventRegistration{
		{ID: 11, Status: model.RegistrationStatusRegistered, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		{ID: 12, Status: model.RegistrationStatusRegistered, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
		{ID: 10, Status: model.RegistrationStatusRegistered, CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
	}, nil)
	regRepo.On("CountRegistered", mock.Anything, uint(1)).Return(int64(3), nil)

	svc := newTestRegistrationService(regRepo, annRepo, time.Now())
	roster, err := svc.Roster(context.Background(), 1, admin)

	assert.NoError(t, err)
	ids := make([]uint, 0, len(roster.Registrations))
	for _, reg := range roster.Registrations {
		ids = append(ids, reg.ID)
	}
	assert.Equal(t, []uint{10, 12, 11}, ids)
}

func TestRegistrationService_ExportCSV(t *testing.T) {
	adminRole := model.RoleClubAdmin
	clubOne := uint(1)
	admin := &model.User{ID: 1, Role: &adminRole, ClubID: &clubOne}

	registeredAt := time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)

	annRepo := new(MockAnnouncementRepository)
	annRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Announcement{
		ID:     1,
		ClubID: 1,
		Active: true,
	}, nil)

	regRepo := new(MockRegistrationRepository)
	regRepo.On("ListByAnnouncement", mock.Anything, uint(1)).Return([]model.EventRegistration{
		{
			Status:    model.RegistrationStatusRegistered,
			CreatedAt: registeredAt,
			User: &model.User{
				Name:       "Asha Rao",
				Email:      "asha@campus.edu",
				RollNumber: "CS21B042",
				Branch:     "CSE",
			},
		},
	}, nil)
	regRepo.On("CountRegistered", mock.Anything, uint(1)).Return(int64(1), nil)

	svc := newTestRegistrationService(regRepo, annRepo, time.Now())
	data, err := svc.ExportCSV(context.Background(), 1, admin)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Name,Email,Roll Number,Branch,Status,Registered At", lines[0])
	assert.Contains(t, lines[1], "asha@campus.edu")
	assert.Contains(t, lines[1], "2026-02-20T09:30:00Z")
}
