package keymap

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnknownAction is reported when a keymap file names an action the
// resolver does not know.
var ErrUnknownAction = errors.New("unknown action")

// Binding is one keys-to-action mapping in a keymap file.
type Binding struct {
	// Keys is the key sequence, in any notation Normalize accepts.
	Keys string

	// Action names the command to execute, e.g. "line.delete".
	Action string

	// Description documents the binding.
	Description string
}

// Keymap is the document form of a binding file.
type Keymap struct {
	Name     string
	Bindings []Binding
}

// Resolver maps action names to commands.
type Resolver interface {
	Resolve(action string) (Command, bool)
}

// MapResolver is a Resolver backed by a plain map.
type MapResolver map[string]Command

// Resolve implements Resolver.
func (m MapResolver) Resolve(action string) (Command, bool) {
	cmd, ok := m[action]
	return cmd, ok
}

// LoadFile reads a keymap from a JSON file of the form:
//
//	{
//	  "name": "user",
//	  "bindings": [
//	    {"keys": "dd", "action": "line.delete", "description": "..."}
//	  ]
//	}
func LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	return Load(data)
}

// Load parses a keymap from JSON bytes.
func Load(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decoding keymap: invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	km := &Keymap{Name: doc.Get("name").String()}

	doc.Get("bindings").ForEach(func(_, b gjson.Result) bool {
		km.Bindings = append(km.Bindings, Binding{
			Keys:        b.Get("keys").String(),
			Action:      b.Get("action").String(),
			Description: b.Get("description").String(),
		})
		return true
	})

	return km, nil
}

// JSON renders the keymap back to its file form.
func (k *Keymap) JSON() ([]byte, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "name", k.Name); err != nil {
		return nil, fmt.Errorf("marshaling keymap: %w", err)
	}
	for i, b := range k.Bindings {
		if doc, err = sjson.Set(doc, fmt.Sprintf("bindings.%d.keys", i), b.Keys); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
		if doc, err = sjson.Set(doc, fmt.Sprintf("bindings.%d.action", i), b.Action); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
		if b.Description == "" {
			continue
		}
		if doc, err = sjson.Set(doc, fmt.Sprintf("bindings.%d.description", i), b.Description); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
	}

	return []byte(doc), nil
}

// SaveFile writes the keymap to a JSON file.
func (k *Keymap) SaveFile(path string) error {
	data, err := k.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}

// Apply binds every entry of the keymap into the table, resolving
// action names through r. Bindings whose action is unknown or whose
// keys fail to normalize are reported per input spec; the rest are
// inserted.
func (k *Keymap) Apply(t *Table, r Resolver) Report {
	specs := make(map[string]Command, len(k.Bindings))
	report := make(Report)

	for _, b := range k.Bindings {
		cmd, ok := r.Resolve(b.Action)
		if !ok {
			report[b.Keys] = append(report[b.Keys],
				fmt.Errorf("%w: %q", ErrUnknownAction, b.Action))
			continue
		}
		specs[b.Keys] = cmd
	}

	for spec, errs := range t.BindAll(specs) {
		report[spec] = append(report[spec], errs...)
	}
	return report
}
