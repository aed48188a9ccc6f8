package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"clubhub/internal/auth"
	"clubhub/internal/mail"
	"clubhub/internal/metrics"
	"clubhub/internal/model"
	"clubhub/internal/repository"
)

// Notifier fans out best-effort email. Dispatch happens off the request
// goroutine; delivery failure never fails the triggering action.
type Notifier interface {
	AnnouncementCreated(ann *model.Announcement)
	AdminRequested(user *model.User)
	AdminApproved(user *model.User, clubName string)
}

type emailNotifier struct {
	subRepo      repository.SubscriptionRepository
	clubRepo     repository.ClubRepository
	mailer       mail.Mailer
	jwtService   *auth.JWTService
	baseURL      string
	coordinators []string
	logger       *logrus.Logger
}

// NewEmailNotifier creates the email-backed notifier.
func NewEmailNotifier(
	subRepo repository.SubscriptionRepository,
	clubRepo repository.ClubRepository,
	mailer mail.Mailer,
	jwtService *auth.JWTService,
	baseURL string,
	coordinators []string,
	logger *logrus.Logger,
) Notifier {
	return &emailNotifier{
		subRepo:      subRepo,
		clubRepo:     clubRepo,
		mailer:       mailer,
		jwtService:   jwtService,
		baseURL:      baseURL,
		coordinators: coordinators,
		logger:       logger,
	}
}

// AnnouncementCreated mails every active subscriber of the announcement's
// club. The HTTP response does not wait for dispatch.
func (n *emailNotifier) AnnouncementCreated(ann *model.Announcement) {
	go n.dispatchAnnouncement(context.Background(), ann)
}

func (n *emailNotifier) dispatchAnnouncement(ctx context.Context, ann *model.Announcement) {
	club, err := n.clubRepo.FindByID(ctx, ann.ClubID)
	if err != nil {
		n.logger.WithError(err).WithField("club_id", ann.ClubID).Warn("notify: load club failed")
		return
	}

	subscribers, err := n.subRepo.ListActiveSubscribers(ctx, ann.ClubID)
	if err != nil {
		n.logger.WithError(err).WithField("club_id", ann.ClubID).Warn("notify: load subscribers failed")
		return
	}

	// Each recipient is independent: one failure is logged and the rest
	// still get their mail.
	for _, sub := range subscribers {
		if err := n.mailer.SendAnnouncement(sub.Email, club.Name, ann.Title, ann.Content); err != nil {
			metrics.NotificationFailedTotal.Inc()
			n.logger.WithError(err).WithFields(logrus.Fields{
				"to":              sub.Email,
				"announcement_id": ann.ID,
			}).Warn("notify: announcement email failed")
			continue
		}
		metrics.NotificationSentTotal.Inc()
	}
}

// AdminRequested mails the coordinators about a pending club-admin request
// with signed approve/reject links.
func (n *emailNotifier) AdminRequested(user *model.User) {
	go n.dispatchAdminRequest(context.Background(), user)
}

func (n *emailNotifier) dispatchAdminRequest(ctx context.Context, user *model.User) {
	clubName := "unknown club"
	if user.ClubID != nil {
		if club, err := n.clubRepo.FindByID(ctx, *user.ClubID); err == nil {
			clubName = club.Name
		}
	}

	approveToken, err := n.jwtService.GenerateActionToken(auth.ActionApproveAdmin, user.Email)
	if err != nil {
		n.logger.WithError(err).Warn("notify: generate approve token failed")
		return
	}
	rejectToken, err := n.jwtService.GenerateActionToken(auth.ActionRejectAdmin, user.Email)
	if err != nil {
		n.logger.WithError(err).Warn("notify: generate reject token failed")
		return
	}

	approveURL := fmt.Sprintf("%s/api/admin/approve-via-email?token=%s", n.baseURL, url.QueryEscape(approveToken))
	rejectURL := fmt.Sprintf("%s/api/admin/reject-via-email?token=%s", n.baseURL, url.QueryEscape(rejectToken))

	for _, coordinator := range n.coordinators {
		if err := n.mailer.SendAdminRequest(coordinator, user.Email, user.Name, clubName, approveURL, rejectURL); err != nil {
			metrics.NotificationFailedTotal.Inc()
			n.logger.WithError(err).WithField("to", coordinator).Warn("notify: admin request email failed")
			continue
		}
		metrics.NotificationSentTotal.Inc()
	}
}

// AdminApproved mails the applicant that their request went through.
func (n *emailNotifier) AdminApproved(user *model.User, clubName string) {
	email := user.Email
	go func() {
		if err := n.mailer.SendAdminApproved(email, clubName); err != nil {
			metrics.NotificationFailedTotal.Inc()
			n.logger.WithError(err).WithField("to", email).Warn("notify: approval email failed")
			return
		}
		metrics.NotificationSentTotal.Inc()
	}()
}
