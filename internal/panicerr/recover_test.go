package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/bitstreamop/internal/panicerr"
)

var errSentinel = errors.New("sentinel")

func Test_Recover(t *testing.T) {
	t.Run("returns", func(t *testing.T) {
		assert.NoError(t, panicerr.Recover("ok", func() error { return nil }))
		err := panicerr.Recover("err", func() error { return errSentinel })
		assert.Equal(t, errSentinel, err)
		assert.False(t, panicerr.IsPanic(err))
	})

	t.Run("panic value", func(t *testing.T) {
		err := panicerr.Recover("worker", func() error { panic("oops") })
		assert.EqualError(t, err, "worker panicked: oops")
		assert.True(t, panicerr.IsPanic(err))
		assert.False(t, panicerr.IsExit(err))
		assert.Contains(t, panicerr.PanicStack(err), "goroutine")
		assert.Contains(t, fmt.Sprintf("%+v", err), "panic stack:")
	})

	t.Run("panic error", func(t *testing.T) {
		err := panicerr.Recover("", func() error { panic(errSentinel) })
		assert.EqualError(t, err, "panicked: sentinel")
		assert.True(t, errors.Is(err, errSentinel))
	})

	t.Run("goexit", func(t *testing.T) {
		err := panicerr.Recover("quitter", func() error {
			runtime.Goexit()
			return nil
		})
		assert.EqualError(t, err, "quitter called runtime.Goexit")
		assert.True(t, panicerr.IsExit(err))
		assert.Equal(t, "", panicerr.PanicStack(err))
	})
}
