package registration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/validator"
)

type stubRegistrationUseCase struct {
	resp       CreateCheckoutSessionResponse
	createErr  error
	webhookErr error

	gotPayload []byte
	gotSig     string
}

func (s *stubRegistrationUseCase) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (CreateCheckoutSessionResponse, error) {
	if s.createErr != nil {
		return CreateCheckoutSessionResponse{}, s.createErr
	}
	return s.resp, nil
}

func (s *stubRegistrationUseCase) OnWebhookNotification(ctx context.Context, payload []byte, sigHeader string) error {
	s.gotPayload = payload
	s.gotSig = sigHeader
	return s.webhookErr
}

func newTestRouter(useCase RegistrationUseCase) *mux.Router {
	router := mux.NewRouter()
	InitHTTPHandler(router, validator.Get(), useCase)
	return router
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRegistrationUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestCreateCheckoutSessionHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		createErr      error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"eventId":"E1","userId":"U1","successUrl":"https://app.example.com/s","cancelUrl":"https://app.example.com/c"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"url":"https://checkout.example.com/cs_1"`,
		},
		{
			name:           "missing eventId",
			body:           `{"userId":"U1","successUrl":"https://app.example.com/s","cancelUrl":"https://app.example.com/c"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `eventId`,
		},
		{
			name:           "malformed json",
			body:           `{"eventId":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"error"`,
		},
		{
			name:           "event not found",
			body:           `{"eventId":"missing","userId":"U1","successUrl":"https://app.example.com/s","cancelUrl":"https://app.example.com/c"}`,
			createErr:      errors.New(http.StatusBadRequest, status.NOT_FOUND, "event with id 'missing' is not found"),
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "not found",
		},
		{
			name:           "invalid price",
			body:           `{"eventId":"E1","userId":"U1","successUrl":"https://app.example.com/s","cancelUrl":"https://app.example.com/c"}`,
			createErr:      errors.New(http.StatusBadRequest, status.INVALID_STATE, "event 'E1' has no chargeable price"),
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "chargeable",
		},
		{
			name:           "upstream failure",
			body:           `{"eventId":"E1","userId":"U1","successUrl":"https://app.example.com/s","cancelUrl":"https://app.example.com/c"}`,
			createErr:      errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while creating checkout session"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: `"type":"UPSTREAM_FAILURE"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(&stubRegistrationUseCase{
				resp:      CreateCheckoutSessionResponse{URL: "https://checkout.example.com/cs_1"},
				createErr: tt.createErr,
			})

			req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.expectedStatus, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("body %s does not contain %q", rec.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestWebhookHandler(t *testing.T) {
	t.Parallel()

	t.Run("acknowledges verified events", func(t *testing.T) {
		t.Parallel()

		useCase := &stubRegistrationUseCase{}
		router := newTestRouter(useCase)

		payload := `{"id":"evt_1","type":"checkout.session.completed"}`
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
		req.Header.Set(signatureHeader, "t=1700000000,v1=abc")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"received":true}` {
			t.Errorf("body = %s", got)
		}
		if string(useCase.gotPayload) != payload {
			t.Errorf("payload passed to the reconciler = %q, want the raw body", useCase.gotPayload)
		}
		if useCase.gotSig != "t=1700000000,v1=abc" {
			t.Errorf("signature header = %q", useCase.gotSig)
		}
	})

	t.Run("rejects signature failures with plaintext", func(t *testing.T) {
		t.Parallel()

		useCase := &stubRegistrationUseCase{
			webhookErr: errors.New(http.StatusBadRequest, status.UNAUTHORIZED, "webhook signature verification failed"),
		}
		router := newTestRouter(useCase)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
		req.Header.Set(signatureHeader, "t=1,v1=bad")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.HasPrefix(rec.Body.String(), "Webhook Error: ") {
			t.Errorf("body = %q, want a Webhook Error prefix", rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("content type = %q, want text/plain", ct)
		}
	})

	t.Run("rejects processing failures", func(t *testing.T) {
		t.Parallel()

		useCase := &stubRegistrationUseCase{
			webhookErr: errors.New(http.StatusInternalServerError, status.UPSTREAM_FAILURE, "an error occurred while writing registration"),
		}
		router := newTestRouter(useCase)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
		req.Header.Set(signatureHeader, "t=1,v1=ok")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
