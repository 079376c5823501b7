package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()

	gt.NoError(t, errutil.Handle(ctx, nil, "nothing"))

	err := goerr.New("boom", goerr.V("claim_id", "7"))
	gt.Error(t, errutil.Handle(ctx, err, "failed")).Is(err)
}

func TestHandleReportsGoerrValues(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	gt.NoError(t, err).Required()

	hub := sentry.NewHub(client, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)
	_ = errutil.Handle(ctx, goerr.New("boom", goerr.V("claim_id", "7")), "claim update failed")

	mu.Lock()
	defer mu.Unlock()
	gt.Array(t, events).Length(1).Required()
	gt.Value(t, events[0].Contexts["goerr"]["claim_id"]).Equal(any("7"))
	gt.Value(t, events[0].Tags["message"]).Equal("claim update failed")
}

func TestHandleHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleHTTP(context.Background(), w, goerr.New("claim not found"), http.StatusNotFound)

	gt.Number(t, w.Code).Equal(http.StatusNotFound)
	gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")

	var body map[string]any
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	gt.Value(t, body["error"]).Equal("claim not found")
	_, ok := body["requiresConfirmation"]
	gt.Bool(t, ok).False()
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.WriteJSONError(w, "duplicate lender", http.StatusConflict, true)

	gt.Number(t, w.Code).Equal(http.StatusConflict)
	var body struct {
		Error                string `json:"error"`
		RequiresConfirmation bool   `json:"requiresConfirmation"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	gt.Value(t, body.Error).Equal("duplicate lender")
	gt.Bool(t, body.RequiresConfirmation).True()
}
