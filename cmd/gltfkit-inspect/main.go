// Command gltfkit-inspect is a thin CLI shell around the core reader
// (spec §1: "test runners, build scripts, and the CLI shells that might
// wrap the library" are explicitly out of core scope). It takes a single
// file path on argv, reads the bytes, calls gltfkit's Reader.Read, and
// prints a YAML summary of the resulting document plus its issues.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oriongate/gltfkit/model"
	"github.com/oriongate/gltfkit/reader"
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read %s: %v", path, err)
	}

	r := reader.New()
	result := r.Read(data)

	out, err := yaml.Marshal(summarize(result))
	if err != nil {
		fatalf("render summary: %v", err)
	}
	os.Stdout.Write(out)
}

func usage() {
	fmt.Fprintln(os.Stderr, "gltfkit-inspect\n\nUsage:\n  gltfkit-inspect <path-to-gltf-or-glb>\n\nPrints a YAML summary of the parsed document: collection counts,\nextensions used/required, and any errors/warnings the reader produced.")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gltfkit-inspect: "+format+"\n", args...)
	os.Exit(1)
}

// summary is the YAML-rendered shape; kept separate from model.Document
// so the CLI output stays stable even if the core's internal struct
// layout changes shape.
type summary struct {
	Present            bool           `yaml:"present"`
	Buffers            int            `yaml:"buffers,omitempty"`
	BufferViews        int            `yaml:"bufferViews,omitempty"`
	Accessors          int            `yaml:"accessors,omitempty"`
	Images             int            `yaml:"images,omitempty"`
	Meshes             int            `yaml:"meshes,omitempty"`
	Nodes              int            `yaml:"nodes,omitempty"`
	Scenes             int            `yaml:"scenes,omitempty"`
	ExtensionsUsed     []string       `yaml:"extensionsUsed,omitempty"`
	ExtensionsRequired []string       `yaml:"extensionsRequired,omitempty"`
	Errors             []issueSummary `yaml:"errors,omitempty"`
	Warnings           []issueSummary `yaml:"warnings,omitempty"`
}

type issueSummary struct {
	Path string `yaml:"path"`
	Code string `yaml:"code"`
	Hint string `yaml:"hint,omitempty"`
}

func summarize(result reader.Result) summary {
	s := summary{Present: result.Model != nil}
	if doc := result.Model; doc != nil {
		fillCounts(&s, doc)
	}
	for _, iss := range result.Errors() {
		s.Errors = append(s.Errors, issueSummary{Path: iss.Path, Code: iss.Code, Hint: iss.Hint})
	}
	for _, iss := range result.Warnings() {
		s.Warnings = append(s.Warnings, issueSummary{Path: iss.Path, Code: iss.Code, Hint: iss.Hint})
	}
	return s
}

func fillCounts(s *summary, doc *model.Document) {
	s.Buffers = len(doc.Buffers)
	s.BufferViews = len(doc.BufferViews)
	s.Accessors = len(doc.Accessors)
	s.Images = len(doc.Images)
	s.Meshes = len(doc.Meshes)
	s.Nodes = len(doc.Nodes)
	s.Scenes = len(doc.Scenes)
	s.ExtensionsUsed = doc.ExtensionsUsed
	s.ExtensionsRequired = doc.ExtensionsRequired
}
