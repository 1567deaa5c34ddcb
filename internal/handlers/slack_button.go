package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"slack-bridge/internal/flash"
	"slack-bridge/internal/forms"
	"slack-bridge/internal/middleware"
	"slack-bridge/internal/observability"
	"slack-bridge/internal/slack"
	"slack-bridge/internal/validation"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var slackButtonTemplate = template.Must(template.ParseFS(templateFS, "templates/slack_button.html"))

const MsgSlackSent = "Message sent successfully"

type SlackButtonHandler struct {
	token     string
	newClient slack.ClientFactory
	notices   *flash.Store
	logger    *zap.Logger
}

func NewSlackButtonHandler(token string, newClient slack.ClientFactory, notices *flash.Store, logger *zap.Logger) *SlackButtonHandler {
	return &SlackButtonHandler{
		token:     token,
		newClient: newClient,
		notices:   notices,
		logger:    logger,
	}
}

type slackButtonPage struct {
	Action    string
	CSRFToken string
	Channel   string
	Text      string
	Errors    validation.FieldErrors
	Notices   []flash.Notice
}

// --- GET /slack-button/ ---

func (h *SlackButtonHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, slackButtonPage{})
}

// --- POST /slack-button/ ---

func (h *SlackButtonHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := forms.NewSlackButtonForm(r.PostForm)
	if !form.IsValid() {
		h.render(w, r, slackButtonPage{
			Channel: form.Channel,
			Text:    form.Text,
			Errors:  form.Errors(),
		})
		return
	}

	err := form.SendSlackMessage(r.Context(), h.newClient(h.token))
	observability.ObserveDispatch(observability.SourceButton, err)

	notice := flash.Success(MsgSlackSent)
	if err != nil {
		detail, ok := slack.APIErrorDetail(err)
		if !ok {
			h.logger.Error("slack button dispatch failed", zap.String("channel", form.Channel), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.logger.Warn("slack API rejected message", zap.String("channel", form.Channel), zap.String("error", detail))
		notice = flash.Error(detail)
	}

	if err := h.notices.Add(w, r, notice); err != nil {
		h.logger.Error("failed to queue notice", zap.Error(err))
	}
	http.Redirect(w, r, r.URL.Path, http.StatusFound)
}

func (h *SlackButtonHandler) render(w http.ResponseWriter, r *http.Request, page slackButtonPage) {
	page.Action = r.URL.Path
	page.CSRFToken = middleware.CSRFToken(r.Context())
	page.Notices = h.notices.Pop(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := slackButtonTemplate.Execute(w, page); err != nil {
		h.logger.Error("failed to render slack button page", zap.Error(err))
	}
}
