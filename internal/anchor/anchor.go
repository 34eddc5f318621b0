// Package anchor generates unique, GitHub-compatible heading anchors.
package anchor

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Combining marks (\p{M}) stay so decomposed accented names keep
	// their accents in the slug.
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\- ]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Registry hands out collision-free anchor slugs for one aggregation run.
// The first registration of a slug yields the bare slug; the Nth collision
// yields "slug-N". State is confined to the registry so concurrent runs in
// a library context never interfere.
type Registry struct {
	counts map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]int)}
}

// Register slugifies headingText and returns a unique anchor for it.
// Registration order is load-bearing: callers must register headings in the
// same traversal order on every run, or numeric suffixes shift and external
// links break.
func (r *Registry) Register(headingText string) string {
	slug := Slugify(headingText)
	count := r.counts[slug]
	r.counts[slug] = count + 1
	if count == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, count)
}

// Slugify normalizes heading text into a URL-safe slug the way popular
// markdown renderers derive heading ids. The exact sequence is a fixed
// contract: trim, lowercase, path separators to spaces, strip everything
// but word characters, hyphens and spaces, underscores to spaces, collapse
// whitespace runs to single hyphens, collapse repeated hyphens, trim
// leading and trailing hyphens.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = strings.ReplaceAll(slug, "/", " ")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, "_", " ")
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
