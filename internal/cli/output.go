package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/visarcu/heatmap/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends in
// a format extension (.svg, .png, .json), that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file for format. A single format written to an
// explicit output uses that path unchanged; otherwise the path is
// <base>.<format>.
func outputPath(format string, formats []string, output, input string) string {
	if len(formats) == 1 && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// writeArtifacts writes each rendered format and returns the paths written,
// in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if output == stdoutPath && len(formats) > 1 {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(formats))
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(format, formats, output, input)
		if err := writeOutput(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeOutput writes data to path, creating parent directories, or to
// stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == stdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
