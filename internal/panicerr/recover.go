package panicerr

import "runtime/debug"

// Recover calls f on a new goroutine and returns its error. A panic or a
// runtime.Goexit that cuts f short comes back as a non-nil error instead.
func Recover(name string, f func() error) error {
	done := make(chan error, 1)
	go func() {
		returned := false
		defer func() {
			if returned {
				return
			}
			if e := recover(); e != nil {
				done <- panicError{name: name, value: e, stack: debug.Stack()}
			} else {
				done <- exitError(name)
			}
		}()
		err := f()
		returned = true
		done <- err
	}()
	return <-done
}
