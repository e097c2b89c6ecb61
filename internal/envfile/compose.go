package envfile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jenian/envaudit/internal/analyzer"
)

// parseCompose extracts service environment entries from a docker-compose
// style document. Both mapping (KEY: value) and list (- KEY=value) forms are
// supported; documents without a services section yield no definitions.
func parseCompose(content []byte, path string) ([]analyzer.DefinitionSite, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	services := mappingValue(doc.Content[0], "services")
	if services == nil || services.Kind != yaml.MappingNode {
		return nil, nil
	}

	var defs []analyzer.DefinitionSite
	for i := 0; i+1 < len(services.Content); i += 2 {
		service := services.Content[i+1]
		if service.Kind != yaml.MappingNode {
			continue
		}
		env := mappingValue(service, "environment")
		if env == nil {
			continue
		}

		switch env.Kind {
		case yaml.MappingNode:
			for j := 0; j+1 < len(env.Content); j += 2 {
				key, value := env.Content[j], env.Content[j+1]
				if !validKey(key.Value) {
					continue
				}
				defs = append(defs, analyzer.DefinitionSite{
					Name:     key.Value,
					Value:    value.Value,
					Location: analyzer.Location{Path: path, Line: key.Line},
				})
			}
		case yaml.SequenceNode:
			for _, item := range env.Content {
				if item.Kind != yaml.ScalarNode {
					continue
				}
				parts := strings.SplitN(item.Value, "=", 2)
				if len(parts) != 2 {
					continue
				}
				key := strings.TrimSpace(parts[0])
				if !validKey(key) {
					continue
				}
				defs = append(defs, analyzer.DefinitionSite{
					Name:     key,
					Value:    strings.TrimSpace(parts[1]),
					Location: analyzer.Location{Path: path, Line: item.Line},
				})
			}
		}
	}

	return defs, nil
}

// mappingValue returns the value node for key within a mapping node
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
