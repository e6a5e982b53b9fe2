package apiclient

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func envelopeData(op string, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if len(env.Data) == 0 {
		return nil, &DecodeError{Op: op, Err: errors.New(`missing "data"`)}
	}
	return env.Data, nil
}

func decodeValue[T any](op string, raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &DecodeError{Op: op, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return v, &DecodeError{Op: op, Err: err}
	}
	return v, nil
}

func decodeOne[T any](op string, body []byte) (T, error) {
	raw, err := envelopeData(op, body)
	if err != nil {
		var zero T
		return zero, err
	}
	if isNull(raw) {
		var zero T
		return zero, &DecodeError{Op: op, Err: errors.New(`"data" is null`)}
	}
	return decodeValue[T](op, raw)
}

// decodeOptional accepts write responses that omit the record.
func decodeOptional[T any](op string, body []byte) (T, error) {
	var zero T
	var env envelope
	if len(body) == 0 || json.Unmarshal(body, &env) != nil || isNull(env.Data) {
		return zero, nil
	}
	return decodeValue[T](op, env.Data)
}

// decodeList decodes a list envelope; a null list is empty.
func decodeList[T any](op string, body []byte) ([]T, error) {
	raw, err := envelopeData(op, body)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	for i := range out {
		if err := validate.Struct(out[i]); err != nil {
			return nil, &DecodeError{Op: op, Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	return out, nil
}
