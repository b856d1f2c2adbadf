// Package probe extracts media metadata from uploaded files.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnreadable indicates the file could not be parsed as media.
var ErrUnreadable = errors.New("unreadable media file")

// Prober reports the playback duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFprobeConfig holds configuration for the ffprobe-based prober.
type FFprobeConfig struct {
	// FFprobePath is the path to the ffprobe binary.
	// If empty, "ffprobe" will be used (assumes it's in PATH).
	FFprobePath string
}

// DefaultFFprobeConfig returns an FFprobeConfig with production-ready defaults.
func DefaultFFprobeConfig() FFprobeConfig {
	return FFprobeConfig{
		FFprobePath: "ffprobe",
	}
}

// FFprobe implements Prober using the ffprobe CLI.
type FFprobe struct {
	config FFprobeConfig
}

// Compile-time verification that FFprobe implements Prober.
var _ Prober = (*FFprobe)(nil)

// NewFFprobe creates a new ffprobe-based prober.
func NewFFprobe(cfg FFprobeConfig) *FFprobe {
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = DefaultFFprobeConfig().FFprobePath
	}
	return &FFprobe{config: cfg}
}

// Duration runs ffprobe against path and parses the container duration.
func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	if err := p.validateInput(path); err != nil {
		return 0, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.config.FFprobePath, p.buildArgs(path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("probe cancelled: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, fmt.Errorf("%w: %s", ErrUnreadable, strings.TrimSpace(stderr.String()))
		}
		return 0, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	return parseDuration(stdout.String())
}

// validateInput checks if the input file exists and is readable.
func (p *FFprobe) validateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		return fmt.Errorf("failed to access input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", path)
	}

	return nil
}

// buildArgs prints only the format duration as a bare number.
func (p *FFprobe) buildArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// parseDuration reads the first line of ffprobe output.
// Streams without a container duration report "N/A".
func parseDuration(out string) (float64, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	line = strings.TrimSpace(line)
	if line == "" || line == "N/A" {
		return 0, fmt.Errorf("%w: no duration reported", ErrUnreadable)
	}

	d, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("%w: invalid duration %q", ErrUnreadable, line)
	}
	return d, nil
}
