package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input string
		want          string
	}{
		{"", "stocks.json", "stocks"},
		{"", "data/dax.layout.json", "data/dax.layout"},
		{"out.svg", "stocks.json", "out"},
		{"out.png", "stocks.json", "out"},
		{"maps/dax", "stocks.json", "maps/dax"},
		{"out.pdf", "stocks.json", "out.pdf"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		formats []string
		output  string
		want    string
	}{
		{"single explicit", "png", []string{"png"}, "map.png", "map.png"},
		{"single explicit any name", "svg", []string{"svg"}, "map", "map"},
		{"single derived", "svg", []string{"svg"}, "", "stocks.svg"},
		{"multiple explicit", "png", []string{"svg", "png"}, "map.svg", "map.png"},
		{"multiple derived", "json", []string{"svg", "json"}, "", "stocks.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.format, tt.formats, tt.output, "stocks.json"); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"png": []byte("png"),
	}

	paths, err := writeArtifacts(artifacts, []string{"svg", "png", "json"}, filepath.Join(dir, "out", "dax"), "dax")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := []string{filepath.Join(dir, "out", "dax.svg"), filepath.Join(dir, "out", "dax.png")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestWriteArtifactsStdoutRejectsMultiple(t *testing.T) {
	_, err := writeArtifacts(map[string][]byte{"svg": nil, "png": nil}, []string{"svg", "png"}, stdoutPath, "dax")
	if err == nil {
		t.Fatal("expected an error writing two formats to stdout")
	}
}

func TestIsLayout(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{`{"title":"DAX","tiles":[]}`, true},
		{"  \n{}", true},
		{`[{"symbol":"SAP"}]`, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isLayout([]byte(tt.data)); got != tt.want {
			t.Errorf("isLayout(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
