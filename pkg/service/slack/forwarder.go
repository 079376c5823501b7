// Package slack forwards alert toasts to a Slack channel.
package slack

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/async"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxSectionBytes is Slack's limit for a section block's text
const maxSectionBytes = 3000

// poster is the part of the Slack API the forwarder needs
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Forwarder is a ToastSink that posts alerts, and optionally error notices,
// to one channel. Posting happens in the background so the toast lifecycle
// never waits on Slack.
type Forwarder struct {
	api        poster
	channelID  string
	withErrors bool
	wg         sync.WaitGroup
}

var _ interfaces.ToastSink = &Forwarder{}

// Option is a functional option for Forwarder configuration
type Option func(*Forwarder)

// WithErrorNotices also forwards error level notices
func WithErrorNotices(enabled bool) Option {
	return func(f *Forwarder) {
		f.withErrors = enabled
	}
}

// New creates a forwarder with the provided bot token
func New(token, channelID string, opts ...Option) (*Forwarder, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	return newForwarder(slack.New(token), channelID, opts...)
}

func newForwarder(api poster, channelID string, opts ...Option) (*Forwarder, error) {
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	f := &Forwarder{
		api:       api,
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Deliver posts the toast when it qualifies and returns immediately
func (f *Forwarder) Deliver(ctx context.Context, toast *model.Toast) {
	if !f.accepts(toast) {
		return
	}

	text, blocks := buildMessage(toast)
	f.wg.Add(1)
	done := async.Dispatch(ctx, func(ctx context.Context) error {
		_, ts, err := f.api.PostMessageContext(ctx, f.channelID,
			slack.MsgOptionText(text, false),
			slack.MsgOptionBlocks(blocks...),
		)
		if err != nil {
			return goerr.Wrap(err, "failed to post alert to Slack",
				goerr.V("channel_id", f.channelID), goerr.V("toast_id", toast.ID))
		}
		logging.From(ctx).Debug("alert posted to Slack", "channel_id", f.channelID, "ts", ts)
		return nil
	})
	go func() {
		<-done
		f.wg.Done()
	}()
}

// Wait blocks until every post in flight has finished
func (f *Forwarder) Wait() {
	f.wg.Wait()
}

func (f *Forwarder) accepts(toast *model.Toast) bool {
	if toast.Kind == types.ToastKindAlert {
		return true
	}
	return f.withErrors && toast.Level == types.ToastLevelError
}

func buildMessage(toast *model.Toast) (string, []slack.Block) {
	title := toast.Title
	if title == "" {
		title = "Claimsync"
	}

	text := fmt.Sprintf("*%s*", title)
	if toast.Message != "" {
		text += "\n" + toast.Message
	}
	text = truncateToMaxBytes(text, maxSectionBytes)

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}
	if toast.NotificationID != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("notification `%s`", toast.NotificationID), false, false),
		))
	}

	fallback := title
	if toast.Message != "" {
		fallback += ": " + toast.Message
	}
	return fallback, blocks
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8
// sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
