package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/auth"
	"clubhub/internal/model"
)

func newTestNotifier(subRepo *MockSubscriptionRepository, clubRepo *MockClubRepository, mailer *MockMailer) *emailNotifier {
	return &emailNotifier{
		subRepo:      subRepo,
		clubRepo:     clubRepo,
		mailer:       mailer,
		jwtService:   auth.NewJWTService("test-secret", 0, 0),
		baseURL:      "http://localhost:8080",
		coordinators: []string{"coord1@campus.edu", "coord2@campus.edu"},
		logger:       quietLogger(),
	}
}

func TestNotifier_AnnouncementFailureDoesNotStopFanOut(t *testing.T) {
	ann := &model.Announcement{ID: 1, ClubID: 1, Title: "Hack Night", Content: "Bring laptops"}

	clubRepo := new(MockClubRepository)
	clubRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Club{ID: 1, Name: "Coding Club"}, nil)

	subRepo := new(MockSubscriptionRepository)
	subRepo.On("ListActiveSubscribers", mock.Anything, uint(1)).Return([]model.User{
		{Email: "first@campus.edu"},
		{Email: "second@campus.edu"},
		{Email: "third@campus.edu"},
	}, nil)

	// the first delivery fails; the remaining subscribers still get mail
	mailer := new(MockMailer)
	mailer.On("SendAnnouncement", "first@campus.edu", "Coding Club", "Hack Night", "Bring laptops").Return(assert.AnError)
	mailer.On("SendAnnouncement", "second@campus.edu", "Coding Club", "Hack Night", "Bring laptops").Return(nil)
	mailer.On("SendAnnouncement", "third@campus.edu", "Coding Club", "Hack Night", "Bring laptops").Return(nil)

	n := newTestNotifier(subRepo, clubRepo, mailer)
	n.dispatchAnnouncement(context.Background(), ann)

	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendAnnouncement", 3)
}

func TestNotifier_AnnouncementSubscriberLoadFailureSendsNothing(t *testing.T) {
	ann := &model.Announcement{ID: 1, ClubID: 1, Title: "Hack Night", Content: "Bring laptops"}

	clubRepo := new(MockClubRepository)
	clubRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Club{ID: 1, Name: "Coding Club"}, nil)

	subRepo := new(MockSubscriptionRepository)
	subRepo.On("ListActiveSubscribers", mock.Anything, uint(1)).Return(nil, assert.AnError)

	mailer := new(MockMailer)

	n := newTestNotifier(subRepo, clubRepo, mailer)
	n.dispatchAnnouncement(context.Background(), ann)

	mailer.AssertNotCalled(t, "SendAnnouncement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_AdminRequestReachesAllCoordinators(t *testing.T) {
	clubOne := uint(1)
	user := &model.User{ID: 5, Email: "applicant@campus.edu", Name: "Asha Rao", ClubID: &clubOne}

	clubRepo := new(MockClubRepository)
	clubRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Club{ID: 1, Name: "Coding Club"}, nil)

	// the first coordinator's mail fails; the second is still attempted
	mailer := new(MockMailer)
	mailer.On("SendAdminRequest", "coord1@campus.edu", "applicant@campus.edu", "Asha Rao", "Coding Club",
		mock.Anything, mock.Anything).Return(assert.AnError)
	mailer.On("SendAdminRequest", "coord2@campus.edu", "applicant@campus.edu", "Asha Rao", "Coding Club",
		mock.Anything, mock.Anything).Return(nil)

	n := newTestNotifier(new(MockSubscriptionRepository), clubRepo, mailer)
	n.dispatchAdminRequest(context.Background(), user)

	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendAdminRequest", 2)
}
