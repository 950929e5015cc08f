package common

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ResolveEncoding looks up IANA character set name. It returns nil encoding
// for UTF-8, which is the default and needs no conversion.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	if len(name) == 0 {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown character set '%s': %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported character set '%s'", name)
	}
	if n, err := ianaindex.IANA.Name(enc); err == nil && strings.EqualFold(n, "UTF-8") {
		return nil, nil
	}
	return enc, nil
}

// ReadSource reads stylesheet text. With nil enc the content must be valid
// UTF-8, otherwise it is converted from enc to UTF-8.
func ReadSource(path string, enc encoding.Encoding) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}

	var t transform.Transformer = encoding.UTF8Validator
	if enc != nil {
		t = enc.NewDecoder()
	}
	if data, _, err = transform.Bytes(t, data); err != nil {
		return nil, fmt.Errorf("unable to decode stylesheet '%s': %w", path, err)
	}
	return data, nil
}

// WriteSource replaces content of the file at path keeping its permissions.
// Output is always UTF-8.
func WriteSource(path string, data []byte) error {
	perm := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}
