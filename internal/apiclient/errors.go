package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed remote call
type Kind int

const (
	KindTransport Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindServer
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindForStatus maps an HTTP status code to its error class.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindClient
	}
	return KindTransport
}

// RemoteError is returned for every failed call. Status is zero for
// transport failures; Message carries the server supplied text, if any.
type RemoteError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s error (HTTP %d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return e.Kind.String() + " error"
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// AsRemoteError extracts a RemoteError from err's chain.
func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	re, ok := AsRemoteError(err)
	return ok && re.Kind == KindNotFound
}

// IsUnauthorized reports whether err asks for re-authentication.
func IsUnauthorized(err error) bool {
	re, ok := AsRemoteError(err)
	return ok && re.Kind == KindUnauthorized
}
