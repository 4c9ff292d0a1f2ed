package account

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

type AccountRepository interface {
	FindByID(ctx context.Context, ID string) (Account, error)
}

type accountRepository struct {
	baseURL    string
	serviceKey string
	logger     *logrus.Logger
	hc         *http.Client
}

func NewAccountRepository(baseURL, serviceKey string, logger *logrus.Logger, hc *http.Client) AccountRepository {
	return &accountRepository{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		logger:     logger,
		hc:         hc,
	}
}

// FindByID implements AccountRepository. It reads the auth backend's admin
// user endpoint, which requires the privileged service key.
func (r *accountRepository) FindByID(ctx context.Context, ID string) (Account, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users/%s", r.baseURL, url.PathEscape(ID))

	hr, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting account's properties")
	}

	hr.Header.Set("apikey", r.serviceKey)
	hr.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.serviceKey))
	hr.Header.Set("Accept", "application/json")

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting account's properties")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting account's properties")
	}

	if hresp.StatusCode == http.StatusNotFound {
		return Account{}, errors.New(http.StatusBadRequest, status.NOT_FOUND, fmt.Sprintf("account with id '%s' is not found", ID))
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("auth backend responded %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting account's properties")
	}

	var data Account
	if err := json.Unmarshal(respBody, &data); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while getting account's properties")
	}

	return data, nil
}
