package event

import (
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

type EventRepository interface {
	FindByID(ctx context.Context, ID string) (Event, error)
}

type eventRepository struct {
	baseURL    string
	serviceKey string
	logger     *logrus.Logger
	hc         *http.Client
}

func NewEventRepository(baseURL, serviceKey string, logger *logrus.Logger, hc *http.Client) EventRepository {
	return &eventRepository{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		logger:     logger,
		hc:         hc,
	}
}

// FindByID implements EventRepository.
func (r *eventRepository) FindByID(ctx context.Context, ID string) (Event, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/events?id=eq.%s&select=id,title,description,price&limit=1", r.baseURL, url.QueryEscape(ID))

	hr, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting event's properties")
	}

	hr.Header.Set("apikey", r.serviceKey)
	hr.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.serviceKey))
	hr.Header.Set("Accept", "application/json")

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting event's properties")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting event's properties")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("event store responded %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting event's properties")
	}

	var rows []Event
	if err := json.Unmarshal(respBody, &rows); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting event's properties")
	}

	if len(rows) == 0 {
		return Event{}, errors.New(http.StatusBadRequest, status.NOT_FOUND, fmt.Sprintf("event with id '%s' is not found", ID))
	}

	return rows[0], nil
}
