// Package srcenc decodes a source file's raw bytes into UTF-8 text using
// the user-supplied IANA encoding name, falling back to the host default
// before giving up.
package srcenc

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/livy-lang/livy/internal/diagnostic"
)

// hostDefault is the encoding tried when the requested one can't decode
// the bytes cleanly. UTF-8 is the host default on every platform this
// compiler targets.
const hostDefault = "UTF-8"

// Decode converts raw into a UTF-8 string using the encoding named by
// name. If name fails to resolve or decode, it retries with hostDefault
// before returning a BadEncoding diagnostic.
func Decode(raw []byte, name string) (string, error) {
	if name == "" {
		name = hostDefault
	}
	text, err := decodeWith(raw, name)
	if err == nil {
		return text, nil
	}
	if name == hostDefault {
		return "", diagnostic.NewBadEncoding(name)
	}
	text, err = decodeWith(raw, hostDefault)
	if err != nil {
		return "", diagnostic.NewBadEncoding(name)
	}
	return text, nil
}

func decodeWith(raw []byte, name string) (string, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		// A registered IANA name with no decoder available.
		return "", diagnostic.NewBadEncoding(name)
	}
	decoded, err := decodeBytes(enc, raw)
	if err != nil {
		return "", err
	}
	return decoded, nil
}

func decodeBytes(enc encoding.Encoding, raw []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
