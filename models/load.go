package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ParseError is returned when the configuration file is missing, is not valid
// JSON or does not describe a usable menu.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse menu configuration: %v", e.Err)
	}

	return fmt.Sprintf("parse menu configuration %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}

		return nil, err
	}

	return cfg, nil
}

func Parse(data []byte) (*Configuration, error) {
	var cfg Configuration

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("unexpected data after top-level value")}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &cfg, nil
}
