package dispatchcfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for table loading.
var (
	// ErrInvalidTable is returned when the YAML document does not describe
	// a dispatch table.
	ErrInvalidTable = errors.New("dispatchcfg: invalid dispatch table")
)

// document is the on-disk shape of a dispatch table.
type document struct {
	Actions map[string][]string `yaml:"actions"`
}

// Load reads a YAML dispatch table. Reverse-path keys are normalized by
// trimming surrounding slashes; empty keys and empty tag lists are
// rejected so configuration mistakes fail at startup.
func Load(r io.Reader) (map[string][]string, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidTable, err)
	}

	table := make(map[string][]string, len(doc.Actions))
	for reverse, tags := range doc.Actions {
		key := strings.Trim(strings.TrimSpace(reverse), "/")
		if key == "" {
			return nil, fmt.Errorf("%w: empty reverse path", ErrInvalidTable)
		}
		if len(tags) == 0 {
			return nil, fmt.Errorf("%w: action %q has no tags", ErrInvalidTable, key)
		}
		for _, tag := range tags {
			if strings.TrimSpace(tag) == "" {
				return nil, fmt.Errorf("%w: action %q has an empty tag", ErrInvalidTable, key)
			}
		}
		table[key] = tags
	}
	return table, nil
}

// LoadFile reads a YAML dispatch table from a file.
func LoadFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
