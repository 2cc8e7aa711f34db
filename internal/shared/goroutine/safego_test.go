package goroutine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/fitment/internal/shared/logger"
)

func TestSafeGo(t *testing.T) {
	t.Run("success closes without error", func(t *testing.T) {
		err, ok := <-SafeGo(logger.Nop(), "ok", func() error { return nil })
		assert.False(t, ok)
		assert.NoError(t, err)
	})

	t.Run("error is delivered", func(t *testing.T) {
		err := <-SafeGo(logger.Nop(), "fails", func() error { return errors.New("listen failed") })
		assert.EqualError(t, err, "listen failed")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		err := <-SafeGo(logger.Nop(), "server", func() error { panic("boom") })
		assert.EqualError(t, err, "server panicked: boom")
	})
}
