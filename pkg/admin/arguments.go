package admin

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ArgumentValue pairs a value with the errors recorded when it was last set.
type ArgumentValue struct {
	Value Value
	Errs  []*Error
}

// DependentRule requires Requires to be present whenever Key is set to one
// of Values.
type DependentRule struct {
	Key      string
	Values   []string
	Requires string
}

// ArgumentRules declares the conflict rules of one resource type. Duplicate
// keys are always flagged.
type ArgumentRules struct {
	Exclusive  [][2]string
	Dependents []DependentRule
}

func (r *ArgumentRules) partnerOf(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, pair := range r.Exclusive {
		switch key {
		case pair[0]:
			return pair[1], true
		case pair[1]:
			return pair[0], true
		}
	}
	return "", false
}

// Arguments is an insertion-ordered argument registry. Violations are
// recorded on the offending entry instead of being returned, so every
// problem in a configuration callback surfaces together.
type Arguments struct {
	rules   *ArgumentRules
	order   []string
	entries map[string]ArgumentValue
}

// NewArguments creates an empty registry governed by rules.
func NewArguments(rules *ArgumentRules) *Arguments {
	return &Arguments{
		rules:   rules,
		entries: make(map[string]ArgumentValue),
	}
}

// Set stores value under key. Re-setting a key keeps the new value but marks
// it as a duplicate; setting one side of an exclusive pair while the other is
// present marks the new key as conflicting. A blank key or a zero Value is
// recorded as an invalid argument.
func (a *Arguments) Set(key string, value Value) {
	key = strings.TrimSpace(key)

	entry := ArgumentValue{Value: value}
	_, exists := a.entries[key]
	if !exists {
		a.order = append(a.order, key)
	}

	switch {
	case key == "":
		entry.Errs = append(entry.Errs, newInvalidArgumentError("argument", "argument key is blank"))
	case !value.IsValid():
		entry.Errs = append(entry.Errs, newInvalidArgumentError(key, fmt.Sprintf("argument '%s' has no value", key)))
	}
	if partner, ok := a.rules.partnerOf(key); ok {
		if _, present := a.entries[partner]; present {
			entry.Errs = append(entry.Errs, newConflictingArgumentError(key, partner))
		}
	}
	if exists {
		entry.Errs = append(entry.Errs, newDuplicateArgumentError(key))
	}
	a.entries[key] = entry
}

// Get returns the entry stored under key.
func (a *Arguments) Get(key string) (ArgumentValue, bool) {
	if a == nil {
		return ArgumentValue{}, false
	}
	entry, ok := a.entries[key]
	return entry, ok
}

// Len reports the number of distinct keys.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Keys returns the keys in the order they were first set.
func (a *Arguments) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// Errors returns the per-entry errors in insertion order followed
// by any dependent-argument violations.
func (a *Arguments) Errors() []*Error {
	if a == nil {
		return nil
	}
	var errs []*Error
	for _, key := range a.order {
		errs = append(errs, a.entries[key].Errs...)
	}
	return append(errs, a.dependentErrors()...)
}

func (a *Arguments) dependentErrors() []*Error {
	if a.rules == nil {
		return nil
	}
	var errs []*Error
	for _, rule := range a.rules.Dependents {
		entry, ok := a.entries[rule.Key]
		if !ok {
			continue
		}
		mode := strings.TrimSpace(entry.Value.String())
		if !containsString(rule.Values, mode) {
			continue
		}
		if _, ok := a.entries[rule.Requires]; !ok {
			errs = append(errs, newDependentMissingError(rule.Key, mode, rule.Requires))
		}
	}
	return errs
}

// Snapshot returns an independent key → value copy suitable for a definition.
func (a *Arguments) Snapshot() map[string]Value {
	if a == nil || len(a.order) == 0 {
		return nil
	}
	out := make(map[string]Value, len(a.order))
	for _, key := range a.order {
		out[key] = a.entries[key].Value
	}
	return out
}

// MarshalJSON encodes the registry as a plain JSON object.
func (a *Arguments) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Snapshot())
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
