package strapi

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the decoded outcome of one call: either Data or Fail is meaningful.
type Result[T any] struct {
	Data T
	Fail *ServiceError
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Fail == nil
}

// Unwrap converts the result into the conventional value/error pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.Fail != nil {
		var zero T
		return zero, r.Fail
	}
	return r.Data, nil
}

// decodeResult reads a whole response body and decodes it once. An empty
// 2xx body leaves Data at its zero value; a []byte target receives the raw
// body without JSON decoding.
func decodeResult[T any](status int, body io.Reader) (Result[T], error) {
	var res Result[T]

	raw, err := io.ReadAll(body)
	if err != nil {
		return res, fmt.Errorf("read response body: %w", err)
	}

	if status < 200 || status > 299 {
		res.Fail = newServiceError(status, raw)
		return res, nil
	}

	if rawOut, ok := any(&res.Data).(*[]byte); ok {
		*rawOut = raw
		return res, nil
	}
	if len(raw) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res.Data); err != nil {
		return res, fmt.Errorf("could not decode response: %w", err)
	}
	return res, nil
}
