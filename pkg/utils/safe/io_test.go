package safe_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/utils/safe"
)

func TestClose(t *testing.T) {
	t.Run("close valid reader", func(t *testing.T) {
		reader := io.NopCloser(bytes.NewReader([]byte("test")))
		safe.Close(reader) // Should not panic
	})

	t.Run("close nil reader", func(t *testing.T) {
		safe.Close(nil) // Should not panic
	})

	t.Run("closer is called once", func(t *testing.T) {
		c := &countCloser{}
		safe.Close(c)
		gt.V(t, c.count).Equal(1)
	})
}

type countCloser struct {
	count int
}

func (c *countCloser) Close() error {
	c.count++
	return nil
}

func TestRollback(t *testing.T) {
	t.Run("rollback with nil transaction", func(t *testing.T) {
		safe.Rollback(nil) // Should not panic
	})
}

func TestCloseWithError(t *testing.T) {
	t.Run("close reader that returns error", func(t *testing.T) {
		reader := &errorCloser{}
		safe.Close(reader) // Should not panic, should log
	})

	t.Run("close reader that returns EOF", func(t *testing.T) {
		reader := &eofCloser{}
		safe.Close(reader) // Should not panic, should not log
	})
}

type errorCloser struct{}

func (e *errorCloser) Close() error {
	return io.ErrUnexpectedEOF
}

type eofCloser struct{}

func (e *eofCloser) Close() error {
	return io.EOF
}
