package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Sharif-Hamza/eventlynk-backend/config"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/account"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/event"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/registration"
	"github.com/Sharif-Hamza/eventlynk-backend/internal/module/stripe"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/applogger"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/kafka"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/middleware"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/monitoring"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/pubsub"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/server"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/validator"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.Monitoring.OTLPEndpoint,
	)

	if err := mon.Start(ctx); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	validate := validator.Get()

	hc := http.DefaultClient

	publisher := pubsub.PublisherFromConfluentKafkaProducer(logger, kafka.NewProducer())

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	eventRepo := event.NewEventRepository(c.EventStore.BaseURL, c.EventStore.ServiceKey, logger, hc)
	accountRepo := account.NewAccountRepository(c.EventStore.BaseURL, c.EventStore.ServiceKey, logger, hc)
	registrationRepo := registration.NewRegistrationRepository(c.EventStore.BaseURL, c.EventStore.ServiceKey, logger, hc)
	stripeRepo := stripe.NewStripeRepository(c.Stripe.BaseURL, c.Stripe.SecretKey, c.Stripe.WebhookSecret, logger, hc)

	registrationUseCase := registration.NewRegistrationUseCase(registration.RegistrationUseCaseProperty{
		Logger:                 logger,
		Timeout:                time.Duration(c.Application.Timeout),
		Currency:               c.Stripe.Currency,
		RegistrationPaidTopic:  c.Kafka.RegistrationPaidTopic,
		EventRepository:        eventRepo,
		AccountRepository:      accountRepo,
		RegistrationRepository: registrationRepo,
		StripeRepository:       stripeRepo,
		Publisher:              publisher,
	})
	registration.InitHTTPHandler(router, validate, registrationUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	publisher.Close()
	mon.Stop(ctx)
}
