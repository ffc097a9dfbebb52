// Package schema loads YAML type definitions into an xdr.Registry.
//
// XDR data is not self-describing: both sides must agree on the layout out
// of band. A schema document is that agreement written down:
//
//	enums:
//	  - name: color
//	    members:
//	      - {name: RED, code: 0}
//	      - {name: GREEN, code: 1}
//	structs:
//	  - name: point
//	    members:
//	      - {name: x, type: int}
//	      - {name: label, type: string}
//	      - {name: tint, type: color}
//
// Enums are registered before structs, and structs in document order, so a
// struct may use any enum and any struct declared above it.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/xdrkit/internal/logger"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"gopkg.in/yaml.v3"
)

// Document is a parsed schema document.
type Document struct {
	Enums   []EnumDef   `yaml:"enums,omitempty" json:"enums,omitempty" validate:"dive" jsonschema:"description=Enumerations; registered before structs"`
	Structs []StructDef `yaml:"structs,omitempty" json:"structs,omitempty" validate:"dive" jsonschema:"description=Structs; registered in order so members may use earlier structs"`
}

// EnumDef declares an enumeration.
type EnumDef struct {
	Name    string          `yaml:"name" json:"name" validate:"required,typename" jsonschema:"pattern=^[A-Za-z_][A-Za-z0-9_]*$"`
	Members []EnumMemberDef `yaml:"members" json:"members" validate:"required,min=1,dive" jsonschema:"minItems=1"`
}

// EnumMemberDef is one symbolic name and its wire code.
type EnumMemberDef struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Code uint32 `yaml:"code" json:"code"`
}

// StructDef declares a struct. A struct without members encodes to zero
// bytes.
type StructDef struct {
	Name    string      `yaml:"name" json:"name" validate:"required,typename" jsonschema:"pattern=^[A-Za-z_][A-Za-z0-9_]*$"`
	Members []MemberDef `yaml:"members,omitempty" json:"members,omitempty" validate:"dive"`
}

// MemberDef is one struct field and the registered type it encodes with.
type MemberDef struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Type string `yaml:"type" json:"type" validate:"required" jsonschema:"description=Builtin type (int uint short ushort float double bool hyper uhyper opaque string) or a declared enum or struct"`
}

// Parse decodes a YAML schema document. Unknown keys are rejected so typos
// such as "member:" do not silently produce empty types. An empty input is
// an empty document.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	doc := &Document{}
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return doc, nil
}

// Load reads, parses and validates the schema document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("schema loaded", logger.SchemaPath(path),
		"enums", len(doc.Enums), "structs", len(doc.Structs))
	return doc, nil
}

// Apply validates the document and defines its types in reg. On error, the
// types defined before the failing one remain registered; use Registry for
// all-or-nothing compilation.
func (d *Document) Apply(reg *xdr.Registry) error {
	if err := d.Validate(); err != nil {
		return err
	}

	for _, e := range d.Enums {
		members := make([]xdr.EnumMember, len(e.Members))
		for i, m := range e.Members {
			members[i] = xdr.EnumMember{Name: m.Name, Code: m.Code}
		}
		if err := reg.DefineEnum(e.Name, members...); err != nil {
			return fmt.Errorf("enum %s: %w", e.Name, err)
		}
		logger.Debug("enum registered", logger.Type(e.Name), logger.Members(len(members)))
	}

	for _, s := range d.Structs {
		members := make([]xdr.Member, len(s.Members))
		for i, m := range s.Members {
			members[i] = xdr.Member{Name: m.Name, Type: m.Type}
		}
		if err := reg.DefineStruct(s.Name, members...); err != nil {
			return fmt.Errorf("struct %s: %w", s.Name, err)
		}
		logger.Debug("struct registered", logger.Type(s.Name), logger.Members(len(members)))
	}

	return nil
}

// Registry compiles the document into a new registry created with opts.
func (d *Document) Registry(opts ...xdr.RegistryOption) (*xdr.Registry, error) {
	reg := xdr.NewRegistry(opts...)
	if err := d.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
