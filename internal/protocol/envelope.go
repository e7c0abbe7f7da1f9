package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guilhermegouw/pomo/internal/schema"
)

// Envelope is the wire form of a command: a name and an optional payload.
type Envelope struct {
	Name    Name            `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeError reports a known command whose payload did not match its shape.
type DecodeError struct {
	Name Name
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s payload: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrMissingPayload is wrapped by DecodeError when a command that needs a
// payload arrives without one.
var ErrMissingPayload = errors.New("missing payload")

// ErrInvalidValue is wrapped by DecodeError when a payload field holds a
// value outside its closed set.
var ErrInvalidValue = errors.New("invalid value")

// ErrMissingField is wrapped by DecodeError when a settings payload leaves
// out a field. A partial update would otherwise save zero values.
var ErrMissingField = errors.New("missing field")

// Decode turns an envelope into a typed command. Unknown names decode to
// Unrecognized without error. Known names whose payload has unknown fields,
// the wrong types or invalid enumerations yield a *DecodeError.
func Decode(env Envelope) (Command, error) {
	switch env.Name {
	case NamePlaySound:
		var c PlaySound
		if err := decodePayload(env, &c); err != nil {
			return nil, err
		}
		if !c.Sound.Valid() {
			return nil, invalid(env.Name, "sound", string(c.Sound))
		}
		return c, nil
	case NameHideWindow:
		return empty(env, HideWindow{})
	case NameMinimizeWindow:
		return empty(env, MinimizeWindow{})
	case NameCloseWindow:
		return empty(env, CloseWindow{})
	case NameNotify:
		var c Notify
		if err := decodePayload(env, &c.Notification); err != nil {
			return nil, err
		}
		return c, nil
	case NameUpdateConfig:
		var c UpdateConfig
		if err := decodePayload(env, &c.Settings); err != nil {
			return nil, err
		}
		if err := requireSettings(env); err != nil {
			return nil, err
		}
		return c, nil
	case NameUpdateSessionStatus:
		var c UpdateSessionStatus
		if err := decodePayload(env, &c); err != nil {
			return nil, err
		}
		switch c.Status {
		case schema.StatusNotStarted, schema.StatusPaused, schema.StatusRunning:
		default:
			return nil, invalid(env.Name, "status", string(c.Status))
		}
		return c, nil
	case NameUpdateCurrentState:
		var c UpdateCurrentState
		if err := decodePayload(env, &c); err != nil {
			return nil, err
		}
		return c, nil
	case NameChooseSoundFile:
		var c ChooseSoundFile
		if err := decodePayload(env, &c); err != nil {
			return nil, err
		}
		if !c.Sound.Valid() {
			return nil, invalid(env.Name, "sound", string(c.Sound))
		}
		return c, nil
	case NameGetInitData:
		return empty(env, GetInitData{})
	case NameHandleExternalMessage:
		var c HandleExternalMessage
		if err := decodePayload(env, &c); err != nil {
			return nil, err
		}
		if !c.Action.Valid() {
			return nil, invalid(env.Name, "action", string(c.Action))
		}
		return c, nil
	case NameQuit:
		return empty(env, Quit{})
	default:
		return Unrecognized{Envelope: env}, nil
	}
}

// Encode is the inverse of Decode.
func Encode(cmd Command) (Envelope, error) {
	var payload any
	switch c := cmd.(type) {
	case Unrecognized:
		return c.Envelope, nil
	case HideWindow, MinimizeWindow, CloseWindow, GetInitData, Quit:
		return Envelope{Name: cmd.CommandName()}, nil
	case Notify:
		payload = c.Notification
	case UpdateConfig:
		payload = c.Settings
	default:
		payload = c
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding %s payload: %w", cmd.CommandName(), err)
	}
	return Envelope{Name: cmd.CommandName(), Payload: data}, nil
}

// DecodeJSON parses a raw envelope and decodes it.
func DecodeJSON(data []byte) (Command, error) {
	var env Envelope
	if err := strictUnmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	return Decode(env)
}

func decodePayload(env Envelope, v any) error {
	if isEmpty(env.Payload) {
		return &DecodeError{Name: env.Name, Err: ErrMissingPayload}
	}
	if err := strictUnmarshal(env.Payload, v); err != nil {
		return &DecodeError{Name: env.Name, Err: err}
	}
	return nil
}

// requireSettings checks that the payload names every settings field.
// Null is accepted for the optional ones.
func requireSettings(env Envelope) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(env.Payload, &fields); err != nil {
		return &DecodeError{Name: env.Name, Err: err}
	}
	var missing []string
	for _, p := range schema.SettingsFields {
		if _, ok := fields[p.UI]; !ok {
			missing = append(missing, p.UI)
		}
	}
	if len(missing) > 0 {
		return &DecodeError{Name: env.Name, Err: fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))}
	}
	return nil
}

func empty(env Envelope, cmd Command) (Command, error) {
	if err := decodeEmpty(env); err != nil {
		return nil, err
	}
	return cmd, nil
}

// decodeEmpty accepts an absent payload, null or an empty object.
func decodeEmpty(env Envelope) error {
	if isEmpty(env.Payload) {
		return nil
	}
	var v struct{}
	if err := strictUnmarshal(env.Payload, &v); err != nil {
		return &DecodeError{Name: env.Name, Err: err}
	}
	return nil
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after payload")
	}
	return nil
}

func invalid(name Name, field, value string) error {
	return &DecodeError{Name: name, Err: fmt.Errorf("%w for %s: %q", ErrInvalidValue, field, value)}
}
