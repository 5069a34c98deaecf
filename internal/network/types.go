package network

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// InterchangeLine labels the transfer edges that join stations of
// different lines.
const InterchangeLine = "interchange"

// Segment is one undirected connection of the network table.
type Segment struct {
	From       string
	To         string
	DistanceKm float64
	Line       string // filled from the enclosing line, or InterchangeLine
}

// Line is a named service route and its segments in travel order.
type Line struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
}

// Table is the static description of a network. Lines are applied first,
// then interchanges, each in file order.
type Table struct {
	Lines        []Line    `yaml:"lines"`
	Interchanges []Segment `yaml:"interchanges"`
}

// UnmarshalYAML accepts either the compact form [from, to, km] or a
// mapping with from/to/km keys.
func (s *Segment) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		if len(value.Content) != 3 {
			return fmt.Errorf("line %d: segment needs [from, to, km], got %d items", value.Line, len(value.Content))
		}
		if err := value.Content[0].Decode(&s.From); err != nil {
			return err
		}
		if err := value.Content[1].Decode(&s.To); err != nil {
			return err
		}
		if err := value.Content[2].Decode(&s.DistanceKm); err != nil {
			return fmt.Errorf("line %d: distance: %w", value.Line, err)
		}
		return nil
	case yaml.MappingNode:
		var m struct {
			From string  `yaml:"from"`
			To   string  `yaml:"to"`
			Km   float64 `yaml:"km"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		s.From, s.To, s.DistanceKm = m.From, m.To, m.Km
		return nil
	default:
		return fmt.Errorf("line %d: segment must be a sequence or mapping", value.Line)
	}
}

// Segments flattens the table into registration order with every segment
// carrying its line label.
func (t *Table) Segments() []Segment {
	var out []Segment
	for _, l := range t.Lines {
		for _, s := range l.Segments {
			s.Line = l.Name
			out = append(out, s)
		}
	}
	for _, s := range t.Interchanges {
		s.Line = InterchangeLine
		out = append(out, s)
	}
	return out
}
