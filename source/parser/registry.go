package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a structured payload decodes to something
// other than a mapping.
var ErrNotMapping = errors.New("payload is not a mapping")

// Decoder decodes a structured-data payload.
type Decoder func(payload []byte) (any, error)

// LanguageRegistry maps fenced code block language tags to decoders.
type LanguageRegistry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder // keyed by lower-cased tag
}

// Languages is the global registry of structured-data languages.
var Languages = NewLanguageRegistry()

// NewLanguageRegistry creates a registry with the default languages.
func NewLanguageRegistry() *LanguageRegistry {
	r := &LanguageRegistry{
		decoders: make(map[string]Decoder),
	}

	r.Register(decodeYAML, "yaml", "yml")
	r.Register(decodeJSON, "json")

	return r
}

// Register adds a decoder under one or more language tags.
func (r *LanguageRegistry) Register(d Decoder, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tag := range tags {
		r.decoders[strings.ToLower(tag)] = d
	}
}

// Lookup returns the decoder for a language tag.
func (r *LanguageRegistry) Lookup(tag string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[strings.ToLower(tag)]
	return d, ok
}

// DecodeMapping decodes payload with the decoder registered for tag and
// requires the result to be a mapping.
func (r *LanguageRegistry) DecodeMapping(tag string, payload []byte) (map[string]any, error) {
	d, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("no decoder for language: %s", tag)
	}
	v, err := d(payload)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotMapping
	}
	return m, nil
}

// ListLanguages returns all registered tags, sorted.
func (r *LanguageRegistry) ListLanguages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.decoders))
	for t := range r.decoders {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func decodeYAML(payload []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("parse YAML block: %w", err)
	}
	return v, nil
}

func decodeJSON(payload []byte) (any, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("parse JSON block: %w", err)
	}
	return v, nil
}
