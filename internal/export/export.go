// Package export writes a snapshot of the list in a human- or
// machine-readable form. Nothing is ever read back: the list lives only
// for the life of the process.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todos/internal/model"
)

// Format selects the encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the accepted values, for help text.
var Formats = []Format{Text, JSON, YAML}

// ParseFormat accepts the names in Formats, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Write encodes items to w. Text writes one "#<id> <title>" line per item.
func Write(w io.Writer, items []model.Item, f Format) error {
	if items == nil {
		items = []model.Item{}
	}
	switch f {
	case JSON:
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		return enc.Close()
	case Text:
		for _, it := range items {
			if _, err := fmt.Fprintln(w, it.Label()); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}
