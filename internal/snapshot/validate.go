package snapshot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed layout.schema.json
var layoutSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func layoutSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("layout.schema.json", layoutSchemaJSON)
	})
	return schema, schemaErr
}

// Validate checks l against the layout JSON schema, then checks that every
// item lies inside the room floor.
func Validate(l Layout) error {
	s, err := layoutSchema()
	if err != nil {
		return fmt.Errorf("compile layout schema: %w", err)
	}

	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("layout schema: %w", err)
	}

	floor := l.Room.Floor()
	for i, it := range l.Items {
		if !floor.Contains(it.Position) {
			return fmt.Errorf("item %d (%s) at %v lies outside the floor", i, it.Prefab, it.Position)
		}
	}
	return nil
}
