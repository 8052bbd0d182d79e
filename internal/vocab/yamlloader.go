package vocab

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level structure of a vocabulary YAML file. It carries
// additional canonical phrases and correction entries that are merged on
// top of the compiled-in defaults at startup.
//
// Example:
//
//	phrases:
//	  - "zercher squat"
//	  - "pendlay row"
//	corrections:
//	  "zurcher": "zercher"
type File struct {
	Phrases     []string          `yaml:"phrases"`
	Corrections map[string]string `yaml:"corrections"`
}

// LoadFile reads and parses a vocabulary YAML file from disk.
// Returns a descriptive error if the file cannot be opened or parsed.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: open vocabulary file %q: %w", path, err)
	}
	defer f.Close()

	vf, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("vocab: parse vocabulary file %q: %w", path, err)
	}
	return vf, nil
}

// LoadFromReader parses vocabulary YAML from an [io.Reader]. The reader is
// consumed entirely; the caller is responsible for closing it.
func LoadFromReader(r io.Reader) (*File, error) {
	var vf File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown top-level keys to catch typos
	if err := dec.Decode(&vf); err != nil {
		return nil, fmt.Errorf("vocab: decode vocabulary yaml: %w", err)
	}
	return &vf, nil
}

// Build returns the default vocabulary and correction table with the
// file's entries merged in. A nil receiver returns the defaults unchanged.
func (f *File) Build() (*Vocabulary, *Corrections) {
	if f == nil {
		return Default(), DefaultCorrections()
	}
	return Default().Merge(f.Phrases...), DefaultCorrections().Merge(f.Corrections)
}
