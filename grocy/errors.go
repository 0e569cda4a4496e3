package grocy

import "fmt"

// APIError is an error used to encode a non-success HTTP status
// from the Grocy API
// (includes the response body text for diagnostics)
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// NewAPIError constructs a new APIError
func NewAPIError(method string, endpoint string, statusCode int, body string) *APIError {
	return &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request %s /api/%s failed with status %d",
			e.Method, e.Endpoint, e.StatusCode)
	}

	return fmt.Sprintf("request %s /api/%s failed with status %d: %s",
		e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// MalformedResponseError is an error used to encode when a response
// from the Grocy API does not have the expected shape,
// which means the remote contract changed
type MalformedResponseError struct {
	Endpoint string
	Detail   string
}

// NewMalformedResponseError constructs a new MalformedResponseError
func NewMalformedResponseError(endpoint string, detail string) *MalformedResponseError {
	return &MalformedResponseError{
		Endpoint: endpoint,
		Detail:   detail,
	}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from /api/%s: %s",
		e.Endpoint, e.Detail)
}
