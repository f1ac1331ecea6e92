package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyscribe/internal/input/key"
)

// ErrInvalidLine is returned for a line that is not a JSON object.
var ErrInvalidLine = errors.New("session: invalid line")

// ErrUnknownType is returned for an event type the dispatcher cannot handle.
var ErrUnknownType = errors.New("session: unknown event type")

// Encode returns the JSON line for ev, without a trailing newline.
func Encode(ev key.Event) (string, error) {
	line := "{}"
	set := func(path string, value any) error {
		var err error
		line, err = sjson.Set(line, path, value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return nil
	}

	if err := set("type", string(ev.Type)); err != nil {
		return "", err
	}
	switch ev.Type {
	case key.TypeKeyDown:
		if err := set("key", ev.Key); err != nil {
			return "", err
		}
		if ev.Code != "" {
			if err := set("code", ev.Code); err != nil {
				return "", err
			}
		}
		if err := set("mod", ev.Modifier); err != nil {
			return "", err
		}
		if err := set("shift", ev.Shift); err != nil {
			return "", err
		}
	case key.TypeInput:
		if err := set("content", ev.Content); err != nil {
			return "", err
		}
	}
	if err := set("sel.start", ev.SelectionStart); err != nil {
		return "", err
	}
	if err := set("sel.end", ev.SelectionEnd); err != nil {
		return "", err
	}
	if !ev.Time.IsZero() {
		if err := set("time", ev.Time.UTC().Format(time.RFC3339Nano)); err != nil {
			return "", err
		}
	}
	return line, nil
}

// Decode parses one JSON line into an event.
func Decode(line string) (key.Event, error) {
	if !gjson.Valid(line) {
		return key.Event{}, ErrInvalidLine
	}
	fields := gjson.Parse(line)
	if !fields.IsObject() {
		return key.Event{}, ErrInvalidLine
	}

	ev := key.Event{
		Type:           key.Type(fields.Get("type").String()),
		SelectionStart: int(fields.Get("sel.start").Int()),
		SelectionEnd:   int(fields.Get("sel.end").Int()),
	}

	switch ev.Type {
	case key.TypeKeyDown:
		ev.Key = fields.Get("key").String()
		ev.Code = fields.Get("code").String()
		if ev.Code == "" {
			ev.Code = key.CodeFor(ev.Key)
		}
		ev.Modifier = fields.Get("mod").Bool()
		ev.Shift = fields.Get("shift").Bool()
	case key.TypeInput:
		ev.Content = fields.Get("content").String()
	default:
		return key.Event{}, fmt.Errorf("%w: %q", ErrUnknownType, ev.Type)
	}

	if ts := fields.Get("time"); ts.Exists() {
		t, err := time.Parse(time.RFC3339Nano, ts.String())
		if err != nil {
			return key.Event{}, fmt.Errorf("decode time: %w", err)
		}
		ev.Time = t
	}
	return ev, nil
}
