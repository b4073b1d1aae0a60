package tableio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clustersum/internal/domain"
)

// LoadLabels reads a YAML mapping of cluster identifier to label.
func LoadLabels(path string) (domain.LabelMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return ParseLabels(data)
}

// ParseLabels decodes a top-level YAML mapping such as
//
//	0: Positive
//	1: Negative
//	shipping: Delivery complaints
//
// Keys go through domain.ParseClusterID, so "0" and 0 name the same
// cluster.
func ParseLabels(data []byte) (domain.LabelMap, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	labels := domain.LabelMap{}
	if len(root.Content) == 0 {
		return labels, nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse labels: line %d: expected a mapping of cluster id to label", m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parse labels: line %d: keys and labels must be scalars", k.Line)
		}
		labels[domain.ParseClusterID(k.Value)] = v.Value
	}
	return labels, nil
}
