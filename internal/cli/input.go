package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/me/schedopt/pkg/model"
	"gopkg.in/yaml.v3"
)

// ReadInstance loads an optimization instance from a JSON or YAML file.
// YAML documents are decoded into generic maps and re-encoded as JSON so
// both formats share the same field names.
func ReadInstance(path string) (*model.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML %s: %w", path, err)
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert YAML %s: %w", path, err)
		}
	}

	var inst model.Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse instance %s: %w", path, err)
	}
	return &inst, nil
}
