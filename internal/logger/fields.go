package logger

import (
	"log/slog"
)

// Standard field keys. Use them consistently so log lines from the CLI and
// the schema loader can be filtered by type name or offset.
const (
	KeyType       = "type"        // Registered type name: int, point, color
	KeyKind       = "kind"        // Codec kind: scalar, wide, struct, enum
	KeyOffset     = "offset"      // Byte offset of a Reader cursor
	KeyWidth      = "width"       // Encoded width in bytes
	KeyBytes      = "bytes"       // Buffer length
	KeyMembers    = "members"     // Number of struct or enum members
	KeySchemaPath = "schema_path" // Schema document path
	KeyConfigPath = "config_path" // Configuration file path
	KeyError      = "error"       // Error message
)

// Type returns a slog.Attr for a registered type name
func Type(name string) slog.Attr {
	return slog.String(KeyType, name)
}

// Kind returns a slog.Attr for a codec kind
func Kind(k string) slog.Attr {
	return slog.String(KeyKind, k)
}

// Offset returns a slog.Attr for a cursor offset
func Offset(off int) slog.Attr {
	return slog.Int(KeyOffset, off)
}

// Width returns a slog.Attr for an encoded width
func Width(n int) slog.Attr {
	return slog.Int(KeyWidth, n)
}

func Bytes(n int) slog.Attr {
	return slog.Int(KeyBytes, n)
}

func Members(n int) slog.Attr {
	return slog.Int(KeyMembers, n)
}

func SchemaPath(p string) slog.Attr {
	return slog.String(KeySchemaPath, p)
}

func ConfigPath(p string) slog.Attr {
	return slog.String(KeyConfigPath, p)
}

// Err returns a slog.Attr for an error. A nil error yields an empty attr,
// which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
