package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNotFound      = errors.New("tool not found")
	ErrDuplicateID   = errors.New("duplicate tool id")
	ErrDuplicateSlug = errors.New("duplicate tool slug")
	ErrInvalid       = errors.New("invalid tool")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Prepare classifies the tool, resolves its icon and validates it.
func Prepare(d Descriptor) (Descriptor, error) {
	d = d.clone()
	d.Action = Classify(d)
	d.Icon = ResolveIcon(d.IconName)
	if err := Validate(d); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func Validate(d Descriptor) error {
	var problems []string

	if strings.TrimSpace(d.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !d.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", d.Category))
	}
	if !slugPattern.MatchString(d.Slug) {
		problems = append(problems, fmt.Sprintf("slug %q is not URL-safe", d.Slug))
	}

	seen := make(map[string]bool, len(d.Inputs))
	for i, in := range d.Inputs {
		if in.Name == "" {
			problems = append(problems, fmt.Sprintf("input %d has no name", i))
			continue
		}
		if seen[in.Name] {
			problems = append(problems, fmt.Sprintf("duplicate input %q", in.Name))
		}
		seen[in.Name] = true
		if !in.Type.Valid() {
			problems = append(problems, fmt.Sprintf("input %q has unknown type %q", in.Name, in.Type))
		}
	}

	if d.Action != nil {
		for _, name := range d.Action.RequiredInputs() {
			if !seen[name] {
				problems = append(problems, fmt.Sprintf("%s action requires input %q", d.Action.Kind(), name))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalid, d.Slug, strings.Join(problems, "; "))
	}
	return nil
}
