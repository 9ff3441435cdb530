package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the system clipboard
type SystemClipboard struct{}

// Copy copies text to the system clipboard
func (SystemClipboard) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// ClipboardAvailable reports whether a clipboard backend is present
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
