package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	httpmw "github.com/mcoot/catan-leaderboard/internal/middleware"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/api")

// Tracing starts a server span per request, continuing any trace context the
// caller propagated. Spans are named after the route template so board slugs
// do not explode span cardinality.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		name := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				name = tmpl
			}
		}

		ctx, span := tracer.Start(ctx, r.Method+" "+name, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		wrapped := httpmw.NewResponseWriter(w)
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		status := wrapped.Status()
		span.SetAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("http.route", name),
			attribute.Int("http.response.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
