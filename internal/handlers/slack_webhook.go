package handlers

import (
	"errors"
	"io"
	"net/http"

	"slack-bridge/internal/observability"
	"slack-bridge/internal/slack"

	"go.uber.org/zap"
)

const webhookGreeting = "Hello from Django!"

// MaxWebhookBodyBytes caps what an unverified caller can make us buffer.
const MaxWebhookBodyBytes = 2621440

type SlackWebhookHandler struct {
	signingSecret string
	newVerifier   slack.VerifierFactory
	logger        *zap.Logger
}

func NewSlackWebhookHandler(signingSecret string, newVerifier slack.VerifierFactory, logger *zap.Logger) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		signingSecret: signingSecret,
		newVerifier:   newVerifier,
		logger:        logger,
	}
}

// --- POST /slack-webhook/ ---
// Called by Slack, not a browser: mounted outside CSRF protection.

func (h *SlackWebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			observability.WebhookRequestsTotal.WithLabelValues("too_large").Inc()
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn("failed to read webhook body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	verifier := h.newVerifier(h.signingSecret)
	if !verifier.IsValidRequest(string(body), r.Header) {
		observability.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		w.WriteHeader(http.StatusForbidden)
		return
	}
	observability.WebhookRequestsTotal.WithLabelValues("verified").Inc()

	writeJSON(w, r, http.StatusOK, map[string]string{"text": webhookGreeting})
}
