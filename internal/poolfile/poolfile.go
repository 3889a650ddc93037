// Package poolfile reads question pools from JSON or YAML documents of the form
// {"<topic>": ["question", ...]}.
package poolfile

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quizcraft/internal/domain"
)

// Parse decodes data according to the extension of filename. .yaml and .yml
// are YAML, everything else is JSON.
func Parse(filename string, data []byte) (domain.Pools, error) {
	var pools domain.Pools
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pools); err != nil {
			return nil, domain.NewError(domain.CodeInvalidInput, "failed to parse yaml pools", err)
		}
	default:
		if err := json.Unmarshal(data, &pools); err != nil {
			return nil, domain.NewError(domain.CodeInvalidInput, "failed to parse json pools", err)
		}
	}
	if pools == nil {
		pools = domain.Pools{}
	}
	for topic, questions := range pools {
		if strings.TrimSpace(topic) == "" {
			return nil, domain.NewInvalidInputError("pool topic must not be empty")
		}
		if questions == nil {
			pools[topic] = []string{}
		}
	}
	return pools, nil
}
