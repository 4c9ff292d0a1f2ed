package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

type RegistrationRepository interface {
	Save(ctx context.Context, registration Registration) error
	MarkPaid(ctx context.Context, eventID, userID, checkoutSessionID string, update PaymentUpdate) error
}

type registrationRepository struct {
	baseURL    string
	serviceKey string
	logger     *logrus.Logger
	hc         *http.Client
}

func NewRegistrationRepository(baseURL, serviceKey string, logger *logrus.Logger, hc *http.Client) RegistrationRepository {
	return &registrationRepository{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		logger:     logger,
		hc:         hc,
	}
}

func (r *registrationRepository) do(ctx context.Context, method, endpoint string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		buff, _ := json.Marshal(body)
		reader = bytes.NewBuffer(buff)
	}

	hr, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while writing registration")
	}

	hr.Header.Set("apikey", r.serviceKey)
	hr.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.serviceKey))
	hr.Header.Set("Content-Type", "application/json")
	hr.Header.Set("Prefer", "return=minimal")

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while writing registration")
	}

	defer hresp.Body.Close()

	respBody, _ := io.ReadAll(hresp.Body)

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("event store responded %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while writing registration")
	}

	return nil
}

// Save implements RegistrationRepository.
func (r *registrationRepository) Save(ctx context.Context, registration Registration) error {
	endpoint := fmt.Sprintf("%s/rest/v1/registrations", r.baseURL)

	return r.do(ctx, http.MethodPost, endpoint, registration)
}

// MarkPaid implements RegistrationRepository. The filter matches the
// {event, user, checkout session} triple recorded at session creation;
// matching zero rows is not an error, the store simply updates nothing.
func (r *registrationRepository) MarkPaid(ctx context.Context, eventID, userID, checkoutSessionID string, update PaymentUpdate) error {
	endpoint := fmt.Sprintf(
		"%s/rest/v1/registrations?event_id=eq.%s&user_id=eq.%s&checkout_session_id=eq.%s",
		r.baseURL,
		url.QueryEscape(eventID),
		url.QueryEscape(userID),
		url.QueryEscape(checkoutSessionID),
	)

	return r.do(ctx, http.MethodPatch, endpoint, update)
}
