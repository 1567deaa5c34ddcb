package main

import (
	"errors"
	"fmt"
	"net/url"

	"slack-bridge/internal/config"
	"slack-bridge/internal/forms"
	"slack-bridge/internal/observability"
	"slack-bridge/internal/slack"

	"github.com/spf13/cobra"
)

var errInvalidMessage = errors.New("invalid message")

func newSendCmd() *cobra.Command {
	var channel, text string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post one message to a Slack channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSlack()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			form := forms.NewSlackButtonForm(url.Values{
				forms.FieldChannel: {channel},
				forms.FieldText:    {text},
			})
			if !form.IsValid() {
				for _, fe := range form.Errors() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", fe.Field, fe.Message)
				}
				return errInvalidMessage
			}

			newClient := clientFactory(cfg.DevMode(), cfg.SlackAPIURL, logger)
			err = form.SendSlackMessage(cmd.Context(), newClient(cfg.SlackToken))
			observability.ObserveDispatch(observability.SourceCLI, err)
			if err != nil {
				if detail, ok := slack.APIErrorDetail(err); ok {
					return fmt.Errorf("slack rejected message: %s", detail)
				}
				return fmt.Errorf("send message: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Message sent successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "channel name or ID")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	return cmd
}
