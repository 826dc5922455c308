package api

import (
	"bytes"

	json "github.com/json-iterator/go"
)

// envelope is the {success, message, data, pagination} wrapper most
// endpoints use
type envelope struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// decodeEnvelope normalises the shapes the API is known to return: a full
// envelope, a bare array, or a bare object. A body without a "data" field is
// treated as the data itself.
func decodeEnvelope(body []byte) (*envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &envelope{}, nil
	}

	if trimmed[0] == '[' {
		return &envelope{Data: json.RawMessage(trimmed)}, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Data == nil && env.Success == nil {
		env.Data = json.RawMessage(trimmed)
	}

	return &env, nil
}

// failed reports whether the envelope explicitly signals failure
func (e *envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e *envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// hasData reports whether the envelope carries a non-null payload
func (e *envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// decodeList reads the data payload as a list. A single object is wrapped
// into a one-element list; a missing payload is an empty list.
func decodeList[T any](e *envelope) ([]T, error) {
	if !e.hasData() {
		return []T{}, nil
	}

	d := bytes.TrimSpace(e.Data)
	if d[0] == '[' {
		var items []T
		if err := json.Unmarshal(d, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(d, &item); err != nil {
		return nil, err
	}
	return []T{item}, nil
}
