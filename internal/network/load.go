// Package network loads the static network table and turns it into a
// transit graph.
package network

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"metro-router/internal/transit"
)

//go:embed hyderabad.yaml
var hyderabadYAML []byte

// Default returns the built-in Hyderabad metro table.
func Default() (*Table, error) {
	return Load(bytes.NewReader(hyderabadYAML))
}

func Load(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("network table is empty")
		}
		return nil, fmt.Errorf("decode network table: %w", err)
	}
	for i, l := range t.Lines {
		if l.Name == "" {
			return nil, fmt.Errorf("line %d has no name", i)
		}
	}
	return &t, nil
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Build registers every segment in order on a fresh graph. The first
// invalid segment aborts the build.
func Build(segments []Segment) (*transit.Graph, error) {
	g := transit.NewGraph()
	for i, s := range segments {
		if err := g.AddEdge(s.From, s.To, s.DistanceKm, s.Line); err != nil {
			return nil, fmt.Errorf("segment %d (%s - %s): %w", i, s.From, s.To, err)
		}
	}
	return g, nil
}

func (t *Table) Build() (*transit.Graph, error) {
	return Build(t.Segments())
}
