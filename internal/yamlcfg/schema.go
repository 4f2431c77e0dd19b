package yamlcfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// stringList accepts either a single scalar or a sequence of scalars, the
// way Travis treats `env`, `script` and friends.
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = stringList(items)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// jobEntry is one matrix.include entry. The inline map catches every field
// the schema does not name; scalar values among them become job metadata.
type jobEntry struct {
	Name         string               `yaml:"name"`
	Language     string               `yaml:"language"`
	OS           string               `yaml:"os"`
	Env          stringList           `yaml:"env"`
	BeforeScript stringList           `yaml:"before_script"`
	Script       stringList           `yaml:"script"`
	Workdir      string               `yaml:"workdir"`
	Timeout      string               `yaml:"timeout"`
	Extra        map[string]yaml.Node `yaml:",inline"`
}

// document is the top level of a Travis-style matrix file.
type document struct {
	Name         string     `yaml:"name"`
	Language     string     `yaml:"language"`
	OS           string     `yaml:"os"`
	Env          stringList `yaml:"env"`
	BeforeScript stringList `yaml:"before_script"`
	Script       stringList `yaml:"script"`
	Workdir      string     `yaml:"workdir"`
	Timeout      string     `yaml:"timeout"`
	Matrix       struct {
		Include []jobEntry `yaml:"include"`
	} `yaml:"matrix"`
	Extra map[string]yaml.Node `yaml:",inline"`
}
