package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/account"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/event"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/stripe"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/pkg/metrics"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/pubsub"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

type RegistrationUseCase interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CreateCheckoutSessionResponse, error)
	OnWebhookNotification(ctx context.Context, payload []byte, sigHeader string) error
}

type registrationUseCase struct {
	logger                 *logrus.Logger
	timeout                time.Duration
	currency               string
	registrationPaidTopic  string
	eventRepository        event.EventRepository
	accountRepository      account.AccountRepository
	registrationRepository RegistrationRepository
	stripeRepository       stripe.StripeRepository
	publisher              pubsub.Publisher
}

type RegistrationUseCaseProperty struct {
	Logger                 *logrus.Logger
	Timeout                time.Duration
	Currency               string
	RegistrationPaidTopic  string
	EventRepository        event.EventRepository
	AccountRepository      account.AccountRepository
	RegistrationRepository RegistrationRepository
	StripeRepository       stripe.StripeRepository
	Publisher              pubsub.Publisher
}

func NewRegistrationUseCase(props RegistrationUseCaseProperty) RegistrationUseCase {
	return &registrationUseCase{
		logger:                 props.Logger,
		timeout:                props.Timeout,
		currency:               props.Currency,
		registrationPaidTopic:  props.RegistrationPaidTopic,
		eventRepository:        props.EventRepository,
		accountRepository:      props.AccountRepository,
		registrationRepository: props.RegistrationRepository,
		stripeRepository:       props.StripeRepository,
		publisher:              props.Publisher,
	}
}

// CreateCheckoutSession implements RegistrationUseCase.
func (u *registrationUseCase) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CreateCheckoutSessionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if req.EventID == "" || req.UserID == "" || req.SuccessURL == "" || req.CancelURL == "" {
		return CreateCheckoutSessionResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "eventId, userId, successUrl and cancelUrl are required")
	}

	e, err := u.eventRepository.FindByID(ctx, req.EventID)
	if err != nil {
		return CreateCheckoutSessionResponse{}, err
	}

	if e.Price <= 0 {
		return CreateCheckoutSessionResponse{}, errors.New(http.StatusBadRequest, status.INVALID_STATE, fmt.Sprintf("event '%s' has no chargeable price", e.ID))
	}

	// Smallest currency unit, rounded half away from zero.
	unitAmount := int64(math.Round(e.Price * 100))

	// Email lookup is best effort; a registration without an email is valid.
	var email string
	if acc, err := u.accountRepository.FindByID(ctx, req.UserID); err == nil {
		email = acc.Email
	} else {
		u.logger.WithContext(ctx).WithField("user_id", req.UserID).WithError(err).Warn("could not resolve user email")
	}

	session, err := u.stripeRepository.CreateCheckoutSession(ctx, stripe.CreateCheckoutSessionRequest{
		Mode:               stripe.ModePayment,
		Currency:           u.currency,
		UnitAmount:         unitAmount,
		ProductName:        e.Title,
		ProductDescription: e.Description,
		Quantity:           1,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
		CustomerEmail:      email,
		Metadata: map[string]string{
			"event_id": e.ID,
			"user_id":  req.UserID,
		},
	})
	if err != nil {
		return CreateCheckoutSessionResponse{}, err
	}

	registration := Registration{
		ID:                uuid.NewString(),
		EventID:           e.ID,
		UserID:            req.UserID,
		UserEmail:         email,
		Status:            StatusPending,
		PaymentStatus:     PaymentStatusPending,
		PaymentAmount:     e.Price,
		CheckoutSessionID: session.ID,
		TicketNumber:      strconv.Itoa(1000 + rand.IntN(8999)),
		TicketStatus:      TicketStatusValid,
		CreatedAt:         time.Now(),
	}

	if err := u.registrationRepository.Save(ctx, registration); err != nil {
		// The gateway session exists but no registration references it.
		u.logger.WithContext(ctx).WithFields(logrus.Fields{
			"event_id":            e.ID,
			"user_id":             req.UserID,
			"checkout_session_id": session.ID,
		}).Error("registration write failed after checkout session creation")
		return CreateCheckoutSessionResponse{}, err
	}

	metrics.CheckoutSessionsCreated.Inc()

	return CreateCheckoutSessionResponse{URL: session.URL}, nil
}

// OnWebhookNotification implements RegistrationUseCase. Nothing in the
// payload is trusted until the signature over the raw bytes verifies.
func (u *registrationUseCase) OnWebhookNotification(ctx context.Context, payload []byte, sigHeader string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	e, err := u.stripeRepository.ConstructEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	metrics.WebhookEventsReceived.WithLabelValues(e.Type).Inc()

	if e.Type != stripe.CheckoutSessionCompleted {
		return nil
	}

	object := e.Data.Object
	eventID := object.Metadata["event_id"]
	userID := object.Metadata["user_id"]

	if eventID == "" || userID == "" || object.ID == "" {
		u.logger.WithContext(ctx).WithField("webhook_event_id", e.ID).Warn("completed checkout event carries no correlation metadata")
		return nil
	}

	update := PaymentUpdate{
		Status:          StatusApproved,
		PaymentStatus:   PaymentStatusCompleted,
		PaymentIntentID: object.PaymentIntent,
	}

	if err := u.registrationRepository.MarkPaid(ctx, eventID, userID, object.ID, update); err != nil {
		return err
	}

	metrics.RegistrationsMarkedPaid.Inc()

	paidEvent := RegistrationPaidEvent{
		EventID:           eventID,
		UserID:            userID,
		CheckoutSessionID: object.ID,
		PaymentIntentID:   object.PaymentIntent,
		PaidAt:            time.Now(),
	}

	buff, _ := json.Marshal(paidEvent)
	if err := u.publisher.Publish(ctx, u.registrationPaidTopic, object.ID, nil, buff); err != nil {
		// The state transition already committed; the gateway still gets
		// its acknowledgment.
		u.logger.WithContext(ctx).WithError(err).WithField("checkout_session_id", object.ID).Error("an error occurred while publishing registration-paid event")
	}

	return nil
}
