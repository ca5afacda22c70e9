package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Marshal encodes v as JSON without escaping HTML characters; creative markup and
// URLs travel through the adapter untouched.
func Marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes data into v and tidies up the error message so it is suitable
// for the publisher-facing error list.
func Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return tryExtractErrorMessage(err)
	}
	return nil
}

// UnmarshalValid is Unmarshal for payloads which must not be empty.
func UnmarshalValid(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("expect { or n, but found EOF")
	}
	return Unmarshal(data, v)
}

func tryExtractErrorMessage(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("cannot unmarshal %s: expected %s but found %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return errors.New(strings.TrimPrefix(err.Error(), "json: "))
}
