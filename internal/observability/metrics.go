package observability

import "github.com/prometheus/client_golang/prometheus"

// Dispatch sources.
const (
	SourceButton = "button"
	SourceTodo   = "todo"
	SourceCLI    = "cli"
)

var (
	SlackDispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slackbridge_slack_dispatch_total",
			Help: "Outbound chat.postMessage calls by source and outcome",
		},
		[]string{"source", "outcome"}, // button|todo|cli , ok|error
	)

	WebhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slackbridge_webhook_requests_total",
			Help: "Inbound webhook requests by verification result",
		},
		[]string{"result"}, // verified|rejected|too_large
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		SlackDispatchTotal,
		WebhookRequestsTotal,
	)
}

// ObserveDispatch counts one outbound call.
func ObserveDispatch(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SlackDispatchTotal.WithLabelValues(source, outcome).Inc()
}
