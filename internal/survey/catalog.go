package survey

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed questions.json
var catalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

// numCategories is fixed by the maturity model. The overall score is an
// unweighted mean over exactly this many categories; revisit scoring if it
// ever changes.
const numCategories = 4

const optionsPerQuestion = 4

// Load parses and validates the embedded question catalog.
func Load() (*Catalog, error) {
	return parse(catalogJSON)
}

// parse decodes raw catalog JSON, checks it against the catalog schema, and
// enforces the structural invariants the scorer and prompt builder rely on.
func parse(raw []byte) (*Catalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}

	var cat Catalog
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := cat.check(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func validateSchema(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://catalog.json", doc); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://catalog.json")
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	return compiled.Validate(inst)
}

// check enforces invariants beyond what the JSON schema can express:
// category count, question-to-category references, and option value
// uniqueness within each question.
func (c *Catalog) check() error {
	if len(c.Categories) != numCategories {
		return fmt.Errorf("catalog has %d categories, want %d", len(c.Categories), numCategories)
	}

	known := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if known[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		known[cat.Name] = true
	}

	seen := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question ID %q", q.ID)
		}
		seen[q.ID] = true

		if !known[q.Category] {
			return fmt.Errorf("question %q references unknown category %q", q.ID, q.Category)
		}
		if len(q.Options) != optionsPerQuestion {
			return fmt.Errorf("question %q has %d options, want %d", q.ID, len(q.Options), optionsPerQuestion)
		}

		values := make(map[int]bool, optionsPerQuestion)
		for _, o := range q.Options {
			if o.Value < 1 || o.Value > optionsPerQuestion {
				return fmt.Errorf("question %q option value %d out of range", q.ID, o.Value)
			}
			if values[o.Value] {
				return fmt.Errorf("question %q has duplicate option value %d", q.ID, o.Value)
			}
			values[o.Value] = true
		}
	}
	return nil
}
