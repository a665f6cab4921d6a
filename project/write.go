package project

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Write serializes v as JSON to w followed by a newline. indent is the number
// of spaces per level; 0 writes compact output.
func Write(w io.Writer, v any, indent int) error {
	var (
		b   []byte
		err error
	)
	if indent > 0 {
		b, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
