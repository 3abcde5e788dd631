package registry

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"skilld/internal/skill"
	"skilld/pkg/logging"
)

// snapshot is one immutable, internally consistent view of the registry:
// the primary stores plus the derived indexes built from them. A snapshot
// is never mutated after publication; mutation builds and publishes a new
// one.
type snapshot struct {
	definitions   map[string]*skill.Definition
	domainIndexes map[string]*skill.DomainIndex

	// derived, always rebuilt from the primary maps above
	byDomain  map[string][]*skill.Definition
	indexList []*skill.DomainIndex
}

// Registry is the concurrent capability index. Readers load the current
// snapshot through an atomic pointer and never take a lock; all writes are
// serialized through a single mutex and publish a complete new snapshot,
// so a concurrent reader observes either the pre- or post-mutation state
// and never a torn one.
//
// Returned definitions and indexes are shared with the snapshot and must
// be treated as read-only.
type Registry struct {
	writeMu  sync.Mutex
	current  atomic.Pointer[snapshot]
	root     string
	resolver skill.Resolver
}

// New creates an empty registry for the given skill root. resolver is
// consulted whenever a definition file is (re)parsed.
func New(root string, resolver skill.Resolver) *Registry {
	r := &Registry{root: root, resolver: resolver}
	r.current.Store(buildSnapshot(
		make(map[string]*skill.Definition),
		make(map[string]*skill.DomainIndex),
	))
	return r
}

// buildSnapshot derives the by-domain grouping and the sorted domain-index
// list from the primary maps and wraps everything into a new snapshot.
func buildSnapshot(defs map[string]*skill.Definition, idxs map[string]*skill.DomainIndex) *snapshot {
	byDomain := make(map[string][]*skill.Definition)
	for _, def := range defs {
		byDomain[def.Domain] = append(byDomain[def.Domain], def)
	}
	for _, group := range byDomain {
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
	}

	indexList := make([]*skill.DomainIndex, 0, len(idxs))
	for _, idx := range idxs {
		indexList = append(indexList, idx)
	}
	sort.Slice(indexList, func(i, j int) bool { return indexList[i].Domain < indexList[j].Domain })

	return &snapshot{
		definitions:   defs,
		domainIndexes: idxs,
		byDomain:      byDomain,
		indexList:     indexList,
	}
}

// mutate applies fn to cloned primary maps under the write lock, then
// rebuilds the derived indexes and publishes the result atomically.
func (r *Registry) mutate(fn func(defs map[string]*skill.Definition, idxs map[string]*skill.DomainIndex)) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	cur := r.current.Load()
	defs := make(map[string]*skill.Definition, len(cur.definitions))
	for name, def := range cur.definitions {
		defs[name] = def
	}
	idxs := make(map[string]*skill.DomainIndex, len(cur.domainIndexes))
	for domain, idx := range cur.domainIndexes {
		idxs[domain] = idx
	}

	fn(defs, idxs)
	r.current.Store(buildSnapshot(defs, idxs))
}

// LoadAll parses everything below the skill root and atomically installs
// the result, replacing all previous content.
func (r *Registry) LoadAll() error {
	defs, idxs, err := skill.LoadAll(r.root, r.resolver)
	if err != nil {
		return err
	}

	defMap := make(map[string]*skill.Definition, len(defs))
	for _, def := range defs {
		if prev, exists := defMap[def.Name]; exists {
			logging.Warn("Registry", "Duplicate capability name '%s' (%s shadows %s)", def.Name, def.Path, prev.Path)
		}
		defMap[def.Name] = def
	}
	idxMap := make(map[string]*skill.DomainIndex, len(idxs))
	for _, idx := range idxs {
		idxMap[idx.Domain] = idx
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.current.Store(buildSnapshot(defMap, idxMap))
	return nil
}

// ReloadOne reparses a single changed file and integrates it. A parse or
// validation failure leaves any previously registered entry untouched, so
// a bad edit never takes a working capability offline; the typed error is
// returned for best-effort logging by the caller.
func (r *Registry) ReloadOne(path string) error {
	if skill.IsDomainIndexFile(path) {
		idx, err := skill.ParseDomainIndex(path)
		if err != nil {
			logging.Warn("Registry", "Reload of domain index %s failed, keeping previous entry: %v", path, err)
			return err
		}
		r.mutate(func(_ map[string]*skill.Definition, idxs map[string]*skill.DomainIndex) {
			// The file may have changed its domain; drop any stale entry
			// registered from the same path under another key.
			for domain, existing := range idxs {
				if existing.Path == path && domain != idx.Domain {
					delete(idxs, domain)
				}
			}
			idxs[idx.Domain] = idx
		})
		logging.Info("Registry", "Reloaded domain index '%s' from %s", idx.Domain, path)
		return nil
	}

	def, err := skill.ParseFile(r.root, path, r.resolver)
	if err != nil {
		logging.Warn("Registry", "Reload of %s failed, keeping previous entry: %v", path, err)
		return err
	}
	r.mutate(func(defs map[string]*skill.Definition, _ map[string]*skill.DomainIndex) {
		for name, existing := range defs {
			if existing.Path == path && name != def.Name {
				delete(defs, name)
			}
		}
		defs[def.Name] = def
	})
	logging.Info("Registry", "Reloaded capability '%s' from %s", def.Name, path)
	return nil
}

// Remove deletes whatever was registered from the given source path. An
// unknown path is a logged no-op.
func (r *Registry) Remove(path string) {
	removed := false
	r.mutate(func(defs map[string]*skill.Definition, idxs map[string]*skill.DomainIndex) {
		for name, def := range defs {
			if def.Path == path {
				delete(defs, name)
				removed = true
			}
		}
		for domain, idx := range idxs {
			if idx.Path == path {
				delete(idxs, domain)
				removed = true
			}
		}
	})
	if removed {
		logging.Info("Registry", "Removed definitions from %s", path)
	} else {
		logging.Debug("Registry", "Remove for unknown path %s, nothing to do", path)
	}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*skill.Definition, bool) {
	def, ok := r.current.Load().definitions[name]
	return def, ok
}

// Exists reports whether a definition is registered under name.
func (r *Registry) Exists(name string) bool {
	_, ok := r.current.Load().definitions[name]
	return ok
}

// DomainIndex returns the domain index registered for domain.
func (r *Registry) DomainIndex(domain string) (*skill.DomainIndex, bool) {
	idx, ok := r.current.Load().domainIndexes[domain]
	return idx, ok
}

// ListDomainIndexes returns all domain indexes sorted by domain.
func (r *Registry) ListDomainIndexes() []*skill.DomainIndex {
	return r.current.Load().indexList
}

// ListByDomain returns all definitions in a domain, sorted by name.
func (r *Registry) ListByDomain(domain string) []*skill.Definition {
	return r.current.Load().byDomain[domain]
}

// ListAll returns every registered definition sorted by name.
func (r *Registry) ListAll() []*skill.Definition {
	snap := r.current.Load()
	all := make([]*skill.Definition, 0, len(snap.definitions))
	for _, def := range snap.definitions {
		all = append(all, def)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Search returns every definition whose name, description, or any tag
// contains the query, case-insensitively, sorted by name.
func (r *Registry) Search(query string) []*skill.Definition {
	q := strings.ToLower(query)
	snap := r.current.Load()

	var matches []*skill.Definition
	for _, def := range snap.definitions {
		if matchesQuery(def, q) {
			matches = append(matches, def)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches
}

func matchesQuery(def *skill.Definition, q string) bool {
	if strings.Contains(strings.ToLower(def.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(def.Description), q) {
		return true
	}
	for _, tag := range def.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
