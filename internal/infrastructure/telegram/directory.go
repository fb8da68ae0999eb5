// Package telegram delivers generated documents to Telegram chats: a
// shared group receives every document, and the order's issuer receives
// a personal copy when a chat mapping exists.
package telegram

import (
	"encoding/json"
	"fmt"
	"os"
)

// ChatDirectory resolves an issuer's user ID to a Telegram chat ID.
type ChatDirectory interface {
	ChatID(userID string) (string, bool)
}

// FileDirectory resolves chat IDs from a JSON file mapping user IDs to
// chat IDs. The file is re-read on every lookup so mappings can be
// edited without restarting the service.
type FileDirectory struct {
	path string
}

// NewFileDirectory creates a directory backed by the given JSON file.
func NewFileDirectory(path string) *FileDirectory {
	return &FileDirectory{path: path}
}

// ChatID looks up the Telegram chat ID for a user. A missing file,
// unreadable file, or absent mapping all report not-found rather than
// failing, since personal delivery is best-effort.
func (d *FileDirectory) ChatID(userID string) (string, bool) {
	if userID == "" {
		return "", false
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", false
	}

	// Chat IDs may be serialized as numbers or strings.
	var mapping map[string]any
	if err := json.Unmarshal(data, &mapping); err != nil {
		return "", false
	}

	v, ok := mapping[userID]
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, x != ""
	case float64:
		return fmt.Sprintf("%.0f", x), true
	default:
		return "", false
	}
}

var _ ChatDirectory = (*FileDirectory)(nil)
