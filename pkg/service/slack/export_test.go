package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Poster is exported for testing
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// NewWithPoster builds a forwarder around a fake Slack API
func NewWithPoster(api Poster, channelID string, opts ...Option) (*Forwarder, error) {
	return newForwarder(api, channelID, opts...)
}

// TruncateToMaxBytes is exported for testing UTF-8 truncation
var TruncateToMaxBytes = truncateToMaxBytes
