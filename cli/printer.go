package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goto/siphon/domain"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func printOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		node, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(node)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// yamlNode keeps the key order of records, which yaml.v3 cannot see through their unexported fields
func yamlNode(v interface{}) (*yaml.Node, error) {
	switch val := v.(type) {
	case domain.Record:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range val.Keys() {
			item, _ := val.Get(k)
			valueNode := &yaml.Node{}
			if err := valueNode.Encode(item); err != nil {
				return nil, fmt.Errorf("encoding field %q: %w", k, err)
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, valueNode)
		}
		return node, nil
	case []domain.Record:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range val {
			item, err := yamlNode(r)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, item)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}
