package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/signaltower/pkg/config"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// artifactPath returns the file an artifact of format is written to.
// Output "city" and format "png" give "city.png".
func artifactPath(output, format string) string {
	return output + "." + config.Extension(format)
}

// writeArtifacts writes each rendered format next to output and returns
// the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if err := errors.ValidatePath(output); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	formats = slices.Clone(formats)
	slices.Sort(formats)
	formats = slices.Compact(formats)

	var written []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(output, format)
		if err := writeFile(data, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writeFile writes data to path, rejecting paths that escape upwards.
func writeFile(data []byte, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
