package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

type StripeRepository interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CheckoutSession, error)
	ConstructEvent(payload []byte, sigHeader string) (Event, error)
}

type stripeRepository struct {
	baseURL       string
	secretKey     string
	webhookSecret string
	logger        *logrus.Logger
	hc            *http.Client
}

func NewStripeRepository(baseURL, secretKey, webhookSecret string, logger *logrus.Logger, hc *http.Client) StripeRepository {
	return &stripeRepository{
		baseURL:       baseURL,
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		logger:        logger,
		hc:            hc,
	}
}

// CreateCheckoutSession implements StripeRepository.
func (r *stripeRepository) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", req.Mode)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("line_items[0][quantity]", strconv.FormatInt(req.Quantity, 10))

	if req.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", req.ProductDescription)
	}
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", r.baseURL)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutSession{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session")
	}

	hr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	hr.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.secretKey))

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutSession{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutSession{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("payment gateway responded %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutSession{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session")
	}

	var session CheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutSession{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session")
	}

	return session, nil
}

// ConstructEvent implements StripeRepository. The payload must be the exact
// raw request body; verification happens before any of its content is
// trusted.
func (r *stripeRepository) ConstructEvent(payload []byte, sigHeader string) (Event, error) {
	if err := verifySignature(payload, sigHeader, r.webhookSecret); err != nil {
		r.logger.WithError(err).Warn("webhook signature verification failed")
		return Event{}, errors.New(http.StatusBadRequest, status.UNAUTHORIZED, "webhook signature verification failed")
	}

	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		r.logger.WithError(err).Error()
		return Event{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "an error occurred while parsing webhook event")
	}

	return e, nil
}
