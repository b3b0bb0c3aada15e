package entities

// Primer is the introduction to the core concepts shown before the rules.
type Primer struct {
	Title    string          `yaml:"title"`
	Intro    string          `yaml:"intro"`
	Sections []PrimerSection `yaml:"sections"`
}

// PrimerSection is one topic of the primer. Body is CommonMark.
type PrimerSection struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}
