// Package catalog defines the fixed set of actions offered to the intent classifier
// and the strict decoding of the arguments the model returns for them.
package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"tickertalk/internal/feature/assistant/domain/entity"
)

// Version identifies the action catalog sent to the model.
const Version = "v1"

type action struct {
	name        entity.ActionName
	description string
	args        entity.Call
	decode      func([]byte) (entity.Call, error)
}

// Actions in the order they are offered to the model.
var actions = []action{
	{
		name:        entity.ActionNews,
		description: "Fetch the latest news for a stock.",
		args:        entity.NewsArgs{},
		decode:      decodeAs[entity.NewsArgs],
	},
	{
		name:        entity.ActionQuote,
		description: "Fetch key data about a stock, or stock data such as price and P/E ratio.",
		args:        entity.QuoteArgs{},
		decode:      decodeAs[entity.QuoteArgs],
	},
	{
		name:        entity.ActionProfile,
		description: "Fetch the company profile of a stock.",
		args:        entity.ProfileArgs{},
		decode:      decodeAs[entity.ProfileArgs],
	},
	{
		name:        entity.ActionChart,
		description: "Fetch the company chart or dashboard or analytics of a stock.",
		args:        entity.ChartArgs{},
		decode:      decodeAs[entity.ChartArgs],
	},
	{
		name:        entity.ActionAnalyst,
		description: "Fetch the analyst recommendations or what analyst has to say about stock?",
		args:        entity.AnalystArgs{},
		decode:      decodeAs[entity.AnalystArgs],
	},
}

type compiled struct {
	specs   []entity.ActionSpec
	schemas map[entity.ActionName]*gojsonschema.Schema
	byName  map[entity.ActionName]action
}

var (
	buildOnce sync.Once
	built     *compiled
	buildErr  error
)

func load() (*compiled, error) {
	buildOnce.Do(func() {
		built, buildErr = build()
	})
	return built, buildErr
}

func build() (*compiled, error) {
	c := &compiled{
		schemas: make(map[entity.ActionName]*gojsonschema.Schema, len(actions)),
		byName:  make(map[entity.ActionName]action, len(actions)),
	}
	for _, a := range actions {
		params, err := parameters(a.args)
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", a.name, err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(params))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", a.name, err)
		}
		c.specs = append(c.specs, entity.ActionSpec{Name: a.name, Description: a.description, Parameters: params})
		c.schemas[a.name] = schema
		c.byName[a.name] = a
	}
	return c, nil
}

// parameters reflects the argument struct into a closed object schema:
// every field required, no additional properties.
func parameters(args any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	b, err := json.Marshal(reflector.Reflect(args))
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	delete(m, "$schema")
	delete(m, "$id")
	return m, nil
}

// Specs returns the action catalog in offering order. The returned slice is a copy.
func Specs() ([]entity.ActionSpec, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]entity.ActionSpec, len(c.specs))
	copy(out, c.specs)
	return out, nil
}

// Known reports whether name is one of the catalog actions.
func Known(name entity.ActionName) bool {
	for _, a := range actions {
		if a.name == name {
			return true
		}
	}
	return false
}
