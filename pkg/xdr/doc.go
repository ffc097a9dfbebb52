// Package xdr implements an XDR (External Data Representation, RFC 4506)
// style fixed-layout binary encoding engine.
//
// The engine is built from three pieces:
//   - Codecs: one per type name, each knowing the byte width of a value,
//     how to write it into a pre-sized slice, and how to read it back.
//   - Writer: an encode session that measures every value first, then
//     allocates one buffer of the exact total size and materializes all
//     pending operations in a single pass.
//   - Reader: a decode cursor over an existing buffer that consumes bytes
//     sequentially, one registered type at a time.
//
// Composite types (structs and enums) are defined on a caller-owned
// Registry and are resolved into ordered lists of sub-codecs at definition
// time. Nothing on the wire describes the data: both peers must agree on
// field order and types out of band.
//
// Wire format:
//   - Big-endian byte order for all multi-byte values
//   - int, uint, float, bool and enum values occupy 4 bytes
//   - short and ushort occupy 2 bytes
//   - double, hyper and uhyper occupy 8 bytes
//   - Variable-length data is preceded by a 4-byte length (unless the size
//     is known out of band) and zero padded to a 4-byte boundary
//   - Structs are the concatenation of their members, with no framing
//
// Sessions are not safe for concurrent use. A Registry is safe for
// concurrent lookups once its types are defined.
//
// Reference: RFC 4506 - XDR: External Data Representation Standard
// https://tools.ietf.org/html/rfc4506
package xdr
