package backend

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Формы успешных ответов каждого эндпоинта
const (
	shapeExtract        = "extract.json"
	shapePredict        = "predict.json"
	shapeSave           = "save_preferences.json"
	shapeGetPreferences = "get_preferences.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type shapes map[string]*jsonschema.Schema

var loadShapes = sync.OnceValues(compileShapes)

func compileShapes() (shapes, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := []string{shapeExtract, shapePredict, shapeSave, shapeGetPreferences}
	for _, name := range names {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	out := make(shapes, len(names))
	for _, name := range names {
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[name] = schema
	}
	return out, nil
}

// match сообщает, совпадает ли тело ответа с формой успешного ответа.
func (s shapes) match(name string, raw []byte) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return s[name].Validate(v) == nil
}
