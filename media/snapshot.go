package media

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// SnapshotResult reports where a snapshot landed, or why it did not.
type SnapshotResult struct {
	Path string
	Err  error
}

// SaveSnapshot encodes img as webp into dir in the background. The
// returned channel yields exactly one result and is then closed.
func SaveSnapshot(ctx context.Context, dir string, img image.Image, now time.Time) <-chan SnapshotResult {
	out := make(chan SnapshotResult, 1)
	go func() {
		defer close(out)
		path, err := writeSnapshot(ctx, dir, img, now)
		out <- SnapshotResult{Path: path, Err: err}
	}()
	return out
}

func writeSnapshot(ctx context.Context, dir string, img image.Image, now time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("media: snapshot mkdir: %w", err)
	}

	path := filepath.Join(dir, "temple-"+now.Format("20060102-150405.000")+".webp")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("media: snapshot create: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("media: snapshot encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("media: snapshot close: %w", err)
	}
	return path, nil
}
