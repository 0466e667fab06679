// Package manifest loads, patches and writes CurseForge modpack manifests.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/tie/modupdater/manifest/jsonspec"
)

const outputPrefix = "new_"

// Load reads and decodes the manifest at path. A missing or invalid
// manifest is an error; there is nothing to update without one.
func Load(path string) (*jsonspec.Manifest, error) {
	src, err := robustio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(src)
}

func Decode(src []byte) (*jsonspec.Manifest, error) {
	var m jsonspec.Manifest
	if err := json.Unmarshal(src, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Encode returns the manifest indented by two spaces.
func Encode(m *jsonspec.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write atomically replaces the file at path with the encoded manifest.
func Write(path string, m *jsonspec.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}

// OutputPath returns path itself when overwrite is set and
// a "new_" prefixed sibling otherwise.
func OutputPath(path string, overwrite bool) string {
	if overwrite {
		return path
	}
	dir, base := filepath.Split(path)
	return filepath.Join(dir, outputPrefix+base)
}
