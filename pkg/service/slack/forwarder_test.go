package slack_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/service/slack"
	"github.com/m-mizutani/gt"
	goslack "github.com/slack-go/slack"
)

type mockPoster struct {
	mu       sync.Mutex
	channels []string
	err      error
}

func (m *mockPoster) PostMessageContext(ctx context.Context, channelID string, options ...goslack.MsgOption) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channelID)
	return channelID, "1234567890.123456", m.err
}

func (m *mockPoster) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("", "C123")
		gt.Value(t, err).NotNil()
	})

	t.Run("returns error when channel is empty", func(t *testing.T) {
		_, err := slack.New("xoxb-test", "")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates forwarder", func(t *testing.T) {
		f, err := slack.New("xoxb-test", "C123")
		gt.NoError(t, err).Required()
		gt.Value(t, f).NotNil()
	})
}

func TestForwarderDeliver(t *testing.T) {
	alert := &model.Toast{ID: "t1", Kind: types.ToastKindAlert, Level: types.ToastLevelError, Title: "Action failed", Message: "DSAR upload failed", NotificationID: "n1"}
	errorNotice := &model.Toast{ID: "t2", Kind: types.ToastKindNotice, Level: types.ToastLevelError, Message: "Failed to update claim status"}
	successNotice := &model.Toast{ID: "t3", Kind: types.ToastKindNotice, Level: types.ToastLevelSuccess, Message: "Claim moved"}

	testCases := []struct {
		name       string
		withErrors bool
		toasts     []*model.Toast
		posted     int
	}{
		{"alerts only", false, []*model.Toast{alert, errorNotice, successNotice}, 1},
		{"alerts and error notices", true, []*model.Toast{alert, errorNotice, successNotice}, 2},
		{"nothing qualifies", false, []*model.Toast{successNotice}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := &mockPoster{}
			f, err := slack.NewWithPoster(api, "C123", slack.WithErrorNotices(tc.withErrors))
			gt.NoError(t, err).Required()

			for _, toast := range tc.toasts {
				f.Deliver(context.Background(), toast)
			}
			f.Wait()
			gt.Value(t, api.count()).Equal(tc.posted)
		})
	}

	t.Run("post failure does not propagate", func(t *testing.T) {
		api := &mockPoster{err: errors.New("channel_not_found")}
		f, err := slack.NewWithPoster(api, "C404")
		gt.NoError(t, err).Required()

		f.Deliver(context.Background(), alert)
		f.Wait()
		gt.Value(t, api.count()).Equal(1)
	})
}

func TestTruncateToMaxBytes(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multi byte not split", "£££", 4, "££"},
		{"exact fit", "££", 4, "££"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := slack.TruncateToMaxBytes(tc.input, tc.max)
			gt.Value(t, got).Equal(tc.want)
			gt.Bool(t, len(got) <= tc.max).True()
			gt.Bool(t, strings.HasPrefix(tc.input, got)).True()
		})
	}
}
