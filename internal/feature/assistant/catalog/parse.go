package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"tickertalk/internal/feature/assistant/domain/entity"
)

// ErrUnknownAction is returned by Parse for a name outside the catalog.
var ErrUnknownAction = errors.New("unknown action")

// ArgumentError reports an argument payload that does not match the action's schema.
type ArgumentError struct {
	Action entity.ActionName
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Action, e.Reason)
}

// Parse validates the decision's argument text against the action's schema and
// decodes it into the action's typed argument struct. Unknown fields are rejected.
func Parse(d entity.Decision) (entity.Call, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	a, ok := c.byName[d.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, d.Action)
	}

	raw := bytes.TrimSpace(d.Arguments)
	if len(raw) == 0 {
		return nil, &ArgumentError{Action: d.Action, Reason: "empty argument payload"}
	}
	if !json.Valid(raw) {
		return nil, &ArgumentError{Action: d.Action, Reason: "argument payload is not valid JSON"}
	}
	if err := validate(c.schemas[d.Action], raw); err != nil {
		return nil, &ArgumentError{Action: d.Action, Reason: err.Error()}
	}

	call, err := a.decode(raw)
	if err != nil {
		return nil, &ArgumentError{Action: d.Action, Reason: err.Error()}
	}
	return call, nil
}

func validate(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}

func decodeAs[T entity.Call](raw []byte) (entity.Call, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after argument object")
	}
	return v, nil
}
