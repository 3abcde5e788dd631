package skill

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"skilld/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// parallelParseLimit bounds the number of files parsed concurrently during
// a bulk load.
const parallelParseLimit = 8

// LoadAll recursively enumerates description files below root and parses
// them. Files named with the domain-index marker are routed to DomainIndex
// parsing, all others to Definition parsing. Invalid files are dropped and
// logged; only a failure to walk the tree itself is returned as an error.
//
// Results are sorted (definitions by name, indexes by domain) so that two
// loads of the same tree yield identical output.
func LoadAll(root string, resolver Resolver) ([]*Definition, []*DomainIndex, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var (
		mu          sync.Mutex
		definitions []*Definition
		indexes     []*DomainIndex
	)

	var g errgroup.Group
	g.SetLimit(parallelParseLimit)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if IsDomainIndexFile(path) {
				index, err := ParseDomainIndex(path)
				if err != nil {
					logging.Warn("SkillLoader", "Skipping domain index %s: %v", path, err)
					return nil
				}
				mu.Lock()
				indexes = append(indexes, index)
				mu.Unlock()
				return nil
			}

			def, err := ParseFile(root, path, resolver)
			if err != nil {
				logging.Warn("SkillLoader", "Skipping %s: %v", path, err)
				return nil
			}
			mu.Lock()
			definitions = append(definitions, def)
			mu.Unlock()
			return nil
		})
	}
	// Parse errors are swallowed above, so Wait only synchronizes.
	_ = g.Wait()

	sort.Slice(definitions, func(i, j int) bool { return definitions[i].Name < definitions[j].Name })
	sort.Slice(indexes, func(i, j int) bool { return indexes[i].Domain < indexes[j].Domain })

	logging.Info("SkillLoader", "Loaded %d definitions and %d domain indexes from %s", len(definitions), len(indexes), root)
	return definitions, indexes, nil
}
