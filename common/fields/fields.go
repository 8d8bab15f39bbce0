/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package fields provides the name/value pairs attached to log entries
package fields

import (
	"fmt"
	"strings"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

type Fields struct {
	Fields []Field
}

type Field struct {
	K string
	V any
}

// Name returns the key of the field to implement the NVPair interface
func (f Field) Name() string {
	return f.K
}

// Value returns the value of the field to implement the NVPair interface
func (f Field) Value() any {
	return f.V
}

//goland:noinspection GoUnusedExportedFunction
func NewFields(fields ...Field) *Fields {
	return &Fields{Fields: fields}
}

//goland:noinspection GoUnusedExportedFunction
func NewField(key string, value any) Field {
	return Field{K: key, V: value}
}

// Error is shorthand for NewField("error", err.Error()) that tolerates nil
func Error(err error) Field {
	if err == nil {
		return Field{K: "error", V: ""}
	}
	return Field{K: "error", V: err.Error()}
}

// Append adds fields and returns the receiver so calls can be chained
func (f *Fields) Append(fields ...Field) *Fields {
	f.Fields = append(f.Fields, fields...)
	return f
}

//goland:noinspection GoUnusedExportedFunction
func (f *Fields) AppendKV(key string, value any) *Fields {
	f.Fields = append(f.Fields, Field{K: key, V: value})
	return f
}

// ToText renders the fields as k=v pairs. Values containing
// whitespace are quoted so the line stays machine-splittable.
func (f *Fields) ToText() string {
	if f == nil || len(f.Fields) == 0 {
		return ""
	}

	var b strings.Builder
	for i, field := range f.Fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := fmt.Sprintf("%v", field.V)
		if strings.ContainsAny(v, " \t") {
			v = fmt.Sprintf("%q", v)
		}
		b.WriteString(field.K)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

// ToPairs implements the ToPairs method
func (f *Fields) ToPairs() []interfaces.NVPair {
	if f == nil {
		return nil
	}
	pairs := make([]interfaces.NVPair, len(f.Fields))
	for i, field := range f.Fields {
		pairs[i] = field
	}
	return pairs
}
