package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventlynk_checkout_sessions_created_total",
		Help: "Total number of payment checkout sessions successfully created.",
	})

	CheckoutSessionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventlynk_checkout_session_failures_total",
		Help: "Total number of failed checkout attempts, labelled by status.",
	}, []string{"status"})

	WebhookEventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventlynk_webhook_events_received_total",
		Help: "Total number of verified webhook events, labelled by event type.",
	}, []string{"type"})

	WebhookSignatureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventlynk_webhook_signature_failures_total",
		Help: "Total number of webhook deliveries rejected at signature verification.",
	})

	RegistrationsMarkedPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventlynk_registrations_marked_paid_total",
		Help: "Total number of registrations transitioned to paid by the reconciler.",
	})
)
