package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/juju/errors"
)

// ValidString asserts that a string length, in characters, is within [min, max]
func ValidString(field, value string, min, max int) error {
	l := utf8.RuneCountInString(value)
	if l < min {
		return errors.NotValidf("%s can't be shorter than %d characters", field, min)
	}
	if l > max {
		return errors.NotValidf("%s can't be longer than %d characters", field, max)
	}
	return nil
}

// NormalizeName trims leading and trailing spaces on a string, and converts its characters to lowercase
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// JSONMarshal will JSON encode a given object, without escaping HTML characters
func JSONMarshal(obj interface{}) ([]byte, error) {
	return JSONMarshalIndent(obj, "", "")
}

// JSONMarshalIndent will JSON encode a given object, without escaping HTML characters and indentation
func JSONMarshalIndent(obj interface{}, prefix, indent string) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	err := enc.Encode(obj)
	if err != nil {
		return nil, err
	}

	// json.NewEncoder.Encode adds a final '\n', json.Marshal does not.
	// Let's keep the default json.Marshal behaviour.
	res := b.Bytes()
	if len(res) >= 1 && res[len(res)-1] == '\n' {
		res = res[:len(res)-1]
	}
	return res, nil
}
