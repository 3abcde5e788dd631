// Package skill defines the capability data model and the definition
// parser.
//
// A capability ("skill") is described by a markdown file with a YAML front
// matter block. Files live below a skill root, grouped into one directory
// per domain; the domain of a capability is always derived from that
// directory layout. A file named SKILL.md documents a whole domain folder
// and is parsed into a DomainIndex instead of a Definition.
//
// Parsing never panics and never fails a whole load because of one bad
// file: every failure is a typed error the caller can log and skip (bulk
// load) or reject while keeping the previous definition (single-file
// reload).
package skill
