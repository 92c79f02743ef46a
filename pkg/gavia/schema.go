// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"fmt"
	"sort"
)

// Schema is the ordered field-level contract for one record type. The same
// type describes inbound notifications (Tag is the record delimiter and
// decode dispatch key) and outbound commands (Tag is the command name).
//
// Field order matters for encode, which emits elements in schema order; it
// is irrelevant for decode, which indexes by name. Field names need not be
// unique: duplicate descriptors each consume the same grouped wire values
// independently.
type Schema struct {
	Tag    string
	Fields []Field

	// Scaled names the numeric fields the scaling extension rescales by
	// Multiplier/Divisor after decode. Empty for most record types.
	Scaled []string
}

// Closed, versioned catalogs. Populated once from records.go and
// commands.go, read-only afterwards: adding a record type or command means
// adding a schema here, never touching the resynchronizer or codec.
var (
	recordSchemas  = map[string]*Schema{}
	commandSchemas = map[string]*Schema{}
)

func registerRecord(s *Schema) *Schema {
	if _, dup := recordSchemas[s.Tag]; dup {
		panic(fmt.Sprintf("gavia: duplicate record schema %q", s.Tag))
	}
	recordSchemas[s.Tag] = s
	return s
}

func registerCommand(s *Schema) *Schema {
	if _, dup := commandSchemas[s.Tag]; dup {
		panic(fmt.Sprintf("gavia: duplicate command schema %q", s.Tag))
	}
	commandSchemas[s.Tag] = s
	return s
}

// RecordSchema looks up the notification schema for a record tag.
func RecordSchema(tag string) (*Schema, error) {
	s, ok := recordSchemas[tag]
	if !ok {
		return nil, fmt.Errorf("%w: record %q", ErrUnknownTag, tag)
	}
	return s, nil
}

// CommandSchema looks up the argument schema for a command name.
func CommandSchema(name string) (*Schema, error) {
	s, ok := commandSchemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: command %q", ErrUnknownTag, name)
	}
	return s, nil
}

// RecordTags returns every known record tag, sorted.
func RecordTags() []string {
	tags := make([]string, 0, len(recordSchemas))
	for tag := range recordSchemas {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// CommandNames returns every known command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commandSchemas))
	for name := range commandSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
