package shared

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the platform clipboard through [clipboard.WriteAll].
type SystemClipboard struct{}

// WriteText copies text to the system clipboard.
//
// The underlying call cannot be cancelled; ctx is only checked before it starts.
func (SystemClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}
