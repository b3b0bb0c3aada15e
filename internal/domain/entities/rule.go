package entities

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleCategory groups rules for display. Title, Icon and Border are cosmetic.
type RuleCategory struct {
	Title  string  `yaml:"title"`
	Icon   string  `yaml:"icon"`
	Border string  `yaml:"border"`
	Rules  []*Rule `yaml:"rules"`
}

// Rule is one grammar principle. IDs are unique across the whole catalog.
type Rule struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	Formula     string    `yaml:"formula"`
	Explanation string    `yaml:"explanation"`
	Examples    []Example `yaml:"examples"`

	Infographic *Infographic `yaml:"infographic"`
}

// Infographic is the visual summary drawn on a rule card: a headline card
// with a short caption followed by highlighted sample sentences.
type Infographic struct {
	Title    string    `yaml:"title"`
	Heading  string    `yaml:"heading"`
	Subtitle string    `yaml:"subtitle"`
	Caption  string    `yaml:"caption"`
	Examples []Example `yaml:"examples"`
}

// Example is either a plain sentence or a structured one with the subject and
// verb highlighted.
type Example struct {
	Text     string // set for plain examples
	Sentence string
	Subject  string
	Verb     string
	Reason   string
}

// IsStructured reports whether the example carries subject/verb highlights.
func (e Example) IsStructured() bool {
	return e.Sentence != ""
}

// String returns the sentence of the example regardless of its kind.
func (e Example) String() string {
	if e.IsStructured() {
		return e.Sentence
	}
	return e.Text
}

// UnmarshalYAML accepts either a scalar or a mapping.
func (e *Example) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Text = node.Value
		return nil
	case yaml.MappingNode:
		var raw struct {
			Sentence string `yaml:"sentence"`
			Subject  string `yaml:"subject"`
			Verb     string `yaml:"verb"`
			Reason   string `yaml:"reason"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		e.Sentence = raw.Sentence
		e.Subject = raw.Subject
		e.Verb = raw.Verb
		e.Reason = raw.Reason
		return nil
	default:
		return fmt.Errorf("line %d: example must be a string or a mapping", node.Line)
	}
}
