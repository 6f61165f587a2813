// Package roster loads candidate recipient rosters from their sources and
// watches file-based rosters for changes. It sits upstream of the engine:
// malformed sources fail here, never inside the derivation core.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pickterm/internal/model"
)

// File is the on-disk roster format:
//
//	recipients:
//	  - email: ann@timescale.com
//	  - email: kate@qwerty.com
//	    selected: true
type File struct {
	Recipients []model.RawRecipient `yaml:"recipients"`
}

// LoadFile reads a YAML roster. Records without an email are dropped;
// everything else passes through untouched for the engine to ingest.
func LoadFile(path string) ([]model.RawRecipient, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}

	recs := make([]model.RawRecipient, 0, len(f.Recipients))
	for _, r := range f.Recipients {
		if r.Email == "" {
			continue
		}
		recs = append(recs, r)
	}
	return recs, nil
}
