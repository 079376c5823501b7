package safe_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexdesk/claimsync/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("already closed")
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	safe.Close(ctx, nil)

	c := &failingCloser{}
	safe.Close(ctx, c)
	gt.Bool(t, c.closed).True()
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	safe.Write(context.Background(), &buf, []byte("claims"))
	gt.String(t, buf.String()).Equal("claims")

	safe.Write(context.Background(), nil, []byte("ignored"))
}

func TestOpenOutput(t *testing.T) {
	w, closer, err := safe.OpenOutput("-")
	gt.NoError(t, err).Required()
	gt.Value(t, w).Equal(os.Stdout)
	closer()

	path := filepath.Join(t.TempDir(), "claimsync.log")
	w, closer, err = safe.OpenOutput(path)
	gt.NoError(t, err).Required()
	safe.Write(context.Background(), w, []byte("line\n"))
	closer()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Equal("line\n")
}
