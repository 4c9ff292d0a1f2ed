package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// HTTPRequestLogger logs every request with method, path, status and
// latency. When debug is false, only responses at or above minLogStatus
// are logged.
type HTTPRequestLogger struct {
	logger       *logrus.Logger
	debug        bool
	minLogStatus int
}

func NewHTTPRequestLogger(logger *logrus.Logger, debug bool, minLogStatus int) *HTTPRequestLogger {
	return &HTTPRequestLogger{
		logger:       logger,
		debug:        debug,
		minLogStatus: minLogStatus,
	}
}

func (l *HTTPRequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		if !l.debug && rec.statusCode < l.minLogStatus {
			return
		}

		l.logger.WithContext(r.Context()).WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.statusCode,
			"elapsed": time.Since(start).String(),
		}).Info("http request")
	})
}
