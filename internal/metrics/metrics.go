package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OTPIssuedTotal counts verification codes issued.
	OTPIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_otp_issued_total",
		Help: "Number of verification codes issued.",
	})

	// NotificationSentTotal counts subscriber emails delivered.
	NotificationSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_notification_sent_total",
		Help: "Number of subscriber notification emails delivered.",
	})

	// NotificationFailedTotal counts subscriber emails that failed to deliver.
	NotificationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_notification_failed_total",
		Help: "Number of subscriber notification emails that failed.",
	})

	// RegistrationsTotal counts event registrations by outcome.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_event_registrations_total",
		Help: "Number of event registration attempts by outcome.",
	}, []string{"outcome"})
)
