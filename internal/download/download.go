// Package download writes thumbnails and media streams to disk. Paths are
// sanitized and validated against directory traversal, and ffmpeg is run
// with an explicit argument slice.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"xview/internal/httputil"
)

func prepareDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return absDir, nil
}

// Save writes data to dir/name atomically and returns the final path.
func Save(data []byte, name, dir string) (string, error) {
	absDir, err := prepareDir(dir)
	if err != nil {
		return "", err
	}
	path, err := httputil.SafeDownloadPath(absDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	tmpFile, err := os.CreateTemp(absDir, "xview-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}

// Stream downloads a media URL into dir using ffmpeg, copying the streams
// without re-encoding. The process is killed when ctx is cancelled.
func Stream(ctx context.Context, mediaURL, title, dir string, progress io.Writer) (string, error) {
	if err := httputil.ValidateURL(mediaURL); err != nil {
		return "", fmt.Errorf("invalid media URL: %w", err)
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := prepareDir(dir)
	if err != nil {
		return "", err
	}
	outputPath, err := httputil.SafeDownloadPath(absDir, httputil.SanitizeFilename(title)+".mp4")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	args := []string{
		"-y",
		"-i", mediaURL,
		"-c", "copy",
		"-metadata", fmt.Sprintf("title=%s", title),
		outputPath,
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	cmd.Stdout = progress
	cmd.Stderr = progress

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}
	return outputPath, nil
}
