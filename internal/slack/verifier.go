package slack

import (
	"net/http"

	slackapi "github.com/slack-go/slack"
)

// Verifier checks the signature of an inbound Slack request.
type Verifier interface {
	IsValidRequest(body string, header http.Header) bool
}

// VerifierFactory builds a Verifier from a signing secret.
type VerifierFactory func(signingSecret string) Verifier

// SignatureVerifier validates the v0 X-Slack-Signature scheme: an HMAC-SHA256
// of "v0:{timestamp}:{body}" keyed by the signing secret. Requests whose
// X-Slack-Request-Timestamp is more than five minutes away from now fail.
type SignatureVerifier struct {
	signingSecret string
}

func NewSignatureVerifier(signingSecret string) Verifier {
	return &SignatureVerifier{signingSecret: signingSecret}
}

func (v *SignatureVerifier) IsValidRequest(body string, header http.Header) bool {
	if v.signingSecret == "" {
		return false
	}
	sv, err := slackapi.NewSecretsVerifier(header, v.signingSecret)
	if err != nil {
		return false
	}
	if _, err := sv.Write([]byte(body)); err != nil {
		return false
	}
	return sv.Ensure() == nil
}
