package panicerr

import (
	"errors"
	"fmt"
)

type panicError struct {
	name  string
	value interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

// Format prints the panic value; "%+v" adds the panicking stack.
func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name != "" {
		fmt.Fprintf(f, "%v ", pe.name)
	}
	fmt.Fprintf(f, "panicked: %v", pe.value)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.value.(error)
	return err
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace captured with a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}

// IsExit returns true if err indicates a recovered runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
