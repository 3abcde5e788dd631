package skill

import (
	"os"
	"path/filepath"
	"strings"

	"skilld/pkg/logging"

	"gopkg.in/yaml.v3"
)

// frontMatter is the raw key/value block at the top of a description file.
type frontMatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Handler     string   `yaml:"handler"`
	Schedule    string   `yaml:"schedule"`
	Tags        []string `yaml:"tags"`
	Author      string   `yaml:"author"`
	Timezone    string   `yaml:"timezone"`
	Domain      string   `yaml:"domain"`
}

// splitFrontMatter separates the front matter block (delimited by lines of
// three dashes) from the markdown body.
func splitFrontMatter(path, content string) (string, string, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return "", "", &NoFrontMatterError{Path: path}
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return "", "", &NoFrontMatterError{Path: path}
	}

	block := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")
	return block, body, nil
}

// decodeFrontMatter parses the front matter block as YAML and decodes it
// into out. The top-level node must be a mapping.
func decodeFrontMatter(path, block string, out interface{}) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return &FrontMatterParseError{Path: path, Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &FrontMatterNotMapError{Path: path}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return &FrontMatterNotMapError{Path: path}
	}
	if err := doc.Content[0].Decode(out); err != nil {
		return &FrontMatterParseError{Path: path, Err: err}
	}
	return nil
}

// DeriveDomain returns the first path segment of path relative to root, or
// "" when the file does not live under a domain directory.
func DeriveDomain(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 || parts[0] == ".." || parts[0] == "." {
		return ""
	}
	return parts[0]
}

// ParseFile converts one capability description file into a validated
// Definition. The domain is always derived from the directory layout below
// root. The handler identifier is resolved against resolver at parse time;
// an unknown identifier degrades the definition to documentation-only.
func ParseFile(root, path string, resolver Resolver) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	block, body, err := splitFrontMatter(path, string(data))
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := decodeFrontMatter(path, block, &fm); err != nil {
		return nil, err
	}

	domain := DeriveDomain(root, path)

	var errs ValidationErrors
	if strings.TrimSpace(fm.Name) == "" {
		errs.Add("name", "is required", fm.Name)
	} else if err := ValidateName(fm.Name); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if strings.TrimSpace(fm.Description) == "" {
		errs.Add("description", "is required")
	}
	if strings.TrimSpace(body) == "" {
		errs.Add("body", "must not be empty")
	}
	if domain == "" {
		errs.Add("path", "file must live under a domain directory", path)
	}
	if errs.HasErrors() {
		return nil, &InvalidDefinitionError{Path: path, Name: fm.Name, Errors: errs}
	}

	handler := ""
	if fm.Handler != "" {
		if resolver != nil && resolver.Known(fm.Handler) {
			handler = fm.Handler
		} else {
			logging.Debug("SkillParser", "Handler '%s' for %s is not registered, treating as documentation-only", fm.Handler, fm.Name)
		}
	}

	return &Definition{
		Name:        fm.Name,
		Description: fm.Description,
		Domain:      domain,
		Handler:     handler,
		Schedule:    fm.Schedule,
		Tags:        fm.Tags,
		Author:      fm.Author,
		Timezone:    fm.Timezone,
		Body:        body,
		Path:        path,
	}, nil
}

// ParseDomainIndex converts a domain marker file into a DomainIndex. Unlike
// ordinary capability files, the domain is taken from front matter here
// because the marker documents the folder itself.
func ParseDomainIndex(path string) (*DomainIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	block, body, err := splitFrontMatter(path, string(data))
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := decodeFrontMatter(path, block, &fm); err != nil {
		return nil, err
	}

	var errs ValidationErrors
	if strings.TrimSpace(fm.Domain) == "" {
		errs.Add("domain", "is required for a domain index file")
	}
	if strings.TrimSpace(fm.Description) == "" {
		errs.Add("description", "is required")
	}
	if errs.HasErrors() {
		return nil, &InvalidDefinitionError{Path: path, Name: fm.Domain, Errors: errs}
	}

	return &DomainIndex{
		Domain:      fm.Domain,
		Description: fm.Description,
		Body:        body,
		Path:        path,
	}, nil
}

// IsDomainIndexFile reports whether path names a domain marker file.
func IsDomainIndexFile(path string) bool {
	return filepath.Base(path) == DomainIndexFile
}
