package slack

import (
	"context"
	"errors"
	"net/http"
	"strings"

	slackapi "github.com/slack-go/slack"
)

// Poster sends a text message to a Slack channel.
// This abstraction allows swapping the Web API client with LogPoster or a test fake.
type Poster interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// ClientFactory builds a Poster from an API token.
type ClientFactory func(token string) Poster

// Client posts messages through the Slack Web API.
type Client struct {
	api *slackapi.Client
}

func NewClient(token string, opts ...slackapi.Option) *Client {
	return &Client{api: slackapi.New(token, opts...)}
}

func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel, slackapi.MsgOptionText(text, false))
	return err
}

// NewClientFactory returns a factory producing Web API clients. An empty apiURL
// keeps the library default (https://slack.com/api/).
func NewClientFactory(apiURL string, httpClient *http.Client) ClientFactory {
	var opts []slackapi.Option
	if apiURL = strings.TrimSpace(apiURL); apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slackapi.OptionAPIURL(apiURL))
	}
	if httpClient != nil {
		opts = append(opts, slackapi.OptionHTTPClient(httpClient))
	}
	return func(token string) Poster {
		return NewClient(token, opts...)
	}
}

// APIErrorDetail returns the provider's error string when err is a Slack API
// reply with ok=false. Transport and HTTP status failures are not API errors.
func APIErrorDetail(err error) (string, bool) {
	var apiErr slackapi.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr.Err, true
	}
	return "", false
}
