package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Minify strips insignificant whitespace from a JSON document. Key order,
// number spelling and fields unknown to Configuration are kept as they are.
func Minify(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Compact(&out, data); err != nil {
		return nil, &ParseError{Err: err}
	}

	return out.Bytes(), nil
}

// MinifyFile minifies the file at in and writes the result to out, returning
// the size of the minified document.
func MinifyFile(in, out string) (int, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return 0, &ParseError{Path: in, Err: err}
	}

	minified, err := Minify(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = in
		}
		return 0, err
	}

	if err := os.WriteFile(out, minified, 0o644); err != nil {
		return 0, fmt.Errorf("write minified config: %w", err)
	}

	return len(minified), nil
}
