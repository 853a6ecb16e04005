package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"
)

// Rejection reasons for password reset attempts.
const (
	ReasonBlocked     = "blocked"
	ReasonRateLimited = "rate_limited"
)

var Logins = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dentalcare_auth_logins_total",
		Help: "Login attempts by principal kind and result",
	},
	[]string{"principal", "result"},
)

var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dentalcare_auth_registrations_total",
		Help: "Patient registrations by result",
	},
	[]string{"result"},
)

var ResetCodes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dentalcare_password_reset_codes_total",
		Help: "Password reset codes issued by delivery result",
	},
	[]string{"result"},
)

// ResetRejections counts reset attempts refused before any lookup.
var ResetRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dentalcare_password_reset_rejections_total",
		Help: "Password reset attempts rejected by the abuse guard",
	},
	[]string{"attempt_type", "reason"},
)

var Appointments = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dentalcare_appointments_created_total",
		Help: "Appointments booked by type",
	},
	[]string{"type"},
)

var registry = prometheus.NewRegistry()

func init() {
	Register(registry)
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Register registers the application collectors with reg.
// Panics if registration fails (following prometheus convention).
func Register(reg prometheus.Registerer) {
	reg.MustRegister(Logins, Registrations, ResetCodes, ResetRejections, Appointments)
}

// Handler serves the application registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordLogin(principal, result string) {
	Logins.WithLabelValues(principal, result).Inc()
}

func RecordRegistration(result string) {
	Registrations.WithLabelValues(result).Inc()
}

func RecordResetCode(result string) {
	ResetCodes.WithLabelValues(result).Inc()
}

func RecordResetRejection(attemptType, reason string) {
	ResetRejections.WithLabelValues(attemptType, reason).Inc()
}

func RecordAppointment(appointmentType string) {
	if appointmentType == "" {
		appointmentType = "unspecified"
	}
	Appointments.WithLabelValues(appointmentType).Inc()
}
