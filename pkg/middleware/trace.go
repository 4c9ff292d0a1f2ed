package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// HTTPResponseTraceInjection copies the active trace id into the response
// so a client-reported failure can be matched to its trace.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if sc := span.SpanContext(); sc.HasTraceID() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}

		next.ServeHTTP(w, r)
	})
}
