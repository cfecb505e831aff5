package stride

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError is any transport failure or non-2xx response from the Stride API
type NetworkError struct {
	Operation  string
	Line       string
	Day        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	var message strings.Builder
	message.WriteString("failed to ")
	message.WriteString(e.Operation)

	if e.Line != "" {
		fmt.Fprintf(&message, " for line %s", e.Line)
	}
	if e.Day != "" {
		fmt.Fprintf(&message, " on %s", e.Day)
	}

	switch {
	case e.StatusCode != 0:
		fmt.Fprintf(&message, ": HTTP %d", e.StatusCode)
	case e.Err != nil:
		fmt.Fprintf(&message, ": %s", e.Err)
	}

	return message.String()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNetworkError(err error) bool {
	var networkError *NetworkError
	return errors.As(err, &networkError)
}
