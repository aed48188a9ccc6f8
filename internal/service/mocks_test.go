package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clubhub/internal/model"
	"clubhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListPendingAdminRequests(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockClubRepository is a mock implementation of ClubRepository.
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) FindByID(ctx context.Context, id uint) (*model.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Club), args.Error(1)
}

func (m *MockClubRepository) ListActive(ctx context.Context) ([]model.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Club), args.Error(1)
}

func (m *MockClubRepository) UpsertByCode(ctx context.Context, club *model.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnnouncementRepository is a mock implementation of AnnouncementRepository.
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, ann *model.Announcement) error {
	args := m.Called(ctx, ann)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, ann *model.Announcement) error {
	args := m.Called(ctx, ann)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, id uint) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ListActive(ctx context.Context) ([]model.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRegistrationRepository is a mock implementation of RegistrationRepository.
// WithTransaction runs the closure against the mock itself so tests can set
// expectations on the inner calls directly.
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RegistrationRepository) error) error {
	return fn(ctx, m)
}

func (m *MockRegistrationRepository) FindAnnouncementForUpdate(ctx context.Context, id uint) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockRegistrationRepository) CountRegistered(ctx context.Context, announcementID uint) (int64, error) {
	args := m.Called(ctx, announcementID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) FindByAnnouncementAndUser(ctx context.Context, announcementID, userID uint) (*model.EventRegistration, error) {
	args := m.Called(ctx, announcementID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *model.EventRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRegistrationRepository) ListByAnnouncement(ctx context.Context, announcementID uint) ([]model.EventRegistration, error) {
	args := m.Called(ctx, announcementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) CountAllRegistered(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Find(ctx context.Context, clubID, userID uint) (*model.ClubSubscription, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClubSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *model.ClubSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *model.ClubSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListActiveByUser(ctx context.Context, userID uint) ([]model.ClubSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClubSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActiveSubscribers(ctx context.Context, clubID uint) ([]model.User, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockCodeStore is a mock implementation of CodeStore.
type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) Issue(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockCodeStore) Consume(ctx context.Context, email, submitted string) (bool, error) {
	args := m.Called(ctx, email, submitted)
	return args.Bool(0), args.Error(1)
}

func (m *MockCodeStore) Revoke(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockMailer) SendAnnouncement(to, clubName, title, content string) error {
	args := m.Called(to, clubName, title, content)
	return args.Error(0)
}

func (m *MockMailer) SendAdminRequest(to, applicantEmail, applicantName, clubName, approveURL, rejectURL string) error {
	args := m.Called(to, applicantEmail, applicantName, clubName, approveURL, rejectURL)
	return args.Error(0)
}

func (m *MockMailer) SendAdminApproved(to, clubName string) error {
	args := m.Called(to, clubName)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) AnnouncementCreated(ann *model.Announcement) {
	m.Called(ann)
}

func (m *MockNotifier) AdminRequested(user *model.User) {
	m.Called(user)
}

func (m *MockNotifier) AdminApproved(user *model.User, clubName string) {
	m.Called(user, clubName)
}
