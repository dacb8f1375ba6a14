package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avelkin/prognosia/internal/model"
)

// knowledgeFile is the on-disk layout of the knowledge base. Diseases are
// a list, not a map, so file order is preserved and becomes the ranking
// tie-break order.
type knowledgeFile struct {
	Diseases []model.Disease     `json:"diseases" yaml:"diseases"`
	Keywords []model.KeywordRule `json:"symptom_keywords" yaml:"symptom_keywords"`
}

// Load reads a knowledge base from a YAML or JSON file (decided by
// extension). Missing duration bounds default to 1 and 365 days. A file
// with no diseases loads as an empty knowledge base rather than an error.
func Load(path string) (*model.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes knowledge base content. ext selects the codec; anything
// other than ".json" is treated as YAML.
func Parse(data []byte, ext string) (*model.KnowledgeBase, error) {
	var file knowledgeFile
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse knowledge base: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse knowledge base: %w", err)
		}
	}

	base := &model.KnowledgeBase{
		Diseases: make(map[string]model.Disease, len(file.Diseases)),
		Keywords: file.Keywords,
	}

	for i, d := range file.Diseases {
		if d.ID == "" {
			return nil, fmt.Errorf("disease %d: missing id", i)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("disease %q: missing name", d.ID)
		}
		if _, dup := base.Diseases[d.ID]; dup {
			return nil, fmt.Errorf("disease %q: duplicate id", d.ID)
		}
		if d.DurationMin <= 0 {
			d.DurationMin = 1
		}
		if d.DurationMax <= 0 {
			d.DurationMax = 365
		}
		base.Order = append(base.Order, d.ID)
		base.Diseases[d.ID] = d
	}

	for i, rule := range file.Keywords {
		if rule.Symptom == "" {
			return nil, fmt.Errorf("keyword rule %d: missing symptom", i)
		}
	}

	return base, nil
}
