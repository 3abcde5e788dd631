package skill

import "regexp"

// DomainIndexFile is the marker file name that documents a whole domain
// folder instead of a single capability.
const DomainIndexFile = "SKILL.md"

// nameRegexp is the required format for capability names: a lowercase
// domain segment and a lowercase action segment joined by a dot.
var nameRegexp = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// reservedActions are action segments that cannot be used by capability
// names because the orchestrator claims them for catalog operations.
var reservedActions = map[string]bool{
	"all":  true,
	"help": true,
}

// Definition is a validated, in-memory capability definition parsed from a
// single description file.
type Definition struct {
	// Name is the globally unique capability name in domain.action notation
	Name string

	// Description is a one-line summary used in catalogs and search
	Description string

	// Domain is the top-level grouping, always derived from the directory
	// path below the skill root, never from front matter
	Domain string

	// Handler is the resolved implementation identifier. Empty means the
	// definition is documentation-only and cannot be dispatched.
	Handler string

	// Schedule is an optional cron expression for scheduled invocation
	Schedule string

	// Tags categorize the capability for search and policy decisions
	Tags []string

	// Author is an optional attribution string from front matter
	Author string

	// Timezone is an optional IANA zone override from front matter
	Timezone string

	// Body is the raw markdown body below the front matter block
	Body string

	// Path is the source file the definition was parsed from
	Path string
}

// Dispatchable reports whether the definition has a resolved handler and
// can be executed, as opposed to being documentation-only.
func (d *Definition) Dispatchable() bool {
	return d.Handler != ""
}

// DomainIndex documents one top-level domain folder. It has no handler and
// is never dispatched.
type DomainIndex struct {
	// Domain is the folder's domain name, taken from the marker file's
	// front matter
	Domain string

	// Description is a one-line summary of the domain
	Description string

	// Body is the raw markdown body with domain-level documentation
	Body string

	// Path is the marker file the index was parsed from
	Path string
}

// Resolver answers whether a handler identifier names a registered
// implementation. It is consulted only at parse time; unknown identifiers
// degrade a definition to documentation-only rather than failing the file.
type Resolver interface {
	Known(identifier string) bool
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(identifier string) bool

func (f ResolverFunc) Known(identifier string) bool { return f(identifier) }

// ValidateName checks a capability name against the domain.action format
// and the reserved action set. It returns nil for a valid name.
func ValidateName(name string) error {
	if !nameRegexp.MatchString(name) {
		return ValidationError{
			Field:   "name",
			Value:   name,
			Message: "must be lowercase dot-notation matching domain.action (e.g. email.send)",
		}
	}
	action := name[lastDot(name)+1:]
	if reservedActions[action] {
		return ValidationError{
			Field:   "name",
			Value:   name,
			Message: "action segment '" + action + "' is reserved",
		}
	}
	return nil
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
