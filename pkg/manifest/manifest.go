package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/utils"
)

const indent = "  "

// Load reads and decodes the whole manifest at path.
func Load(path string) (*models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m := new(models.Manifest)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return m, nil
}

// Encode renders the manifest with two-space indentation. HTML characters
// are left alone.
func Encode(m *models.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Save replaces the manifest at path with m. The previous file mode is kept.
func Save(path string, m *models.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	perm := fs.FileMode(0o644)
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat manifest: %w", err)
	}

	return utils.WriteFileAtomic(path, data, perm)
}

// Backup copies the manifest to path + ".bak" and returns the backup path.
func Backup(path string) (string, error) {
	backupPath := path + ".bak"
	if err := utils.CopyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up manifest: %w", err)
	}
	return backupPath, nil
}
