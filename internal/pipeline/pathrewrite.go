package pipeline

import (
	"net/url"
	"path"
	"strings"

	"github.com/alnah/go-md2note/internal/htmltree"
)

// RewriteRelativeURLs resolves relative image and link targets against base.
// The editor receives HTML without the article's location, so a relative
// "images/a.png" would otherwise point nowhere. A nil base leaves the tree
// unchanged.
//
// Rewrites:
//   - img[src]
//   - a[href] (not fragments)
//
// Leaves alone absolute URLs, protocol-relative URLs, data: URIs, fragment
// links and targets that would climb above base.
func RewriteRelativeURLs(root *htmltree.Root, base *url.URL) {
	if base == nil {
		return
	}
	htmltree.Walk(root, func(el *htmltree.Element) bool {
		switch el.Tag {
		case "img":
			rewriteAttr(el, "src", base)
		case "a":
			rewriteAttr(el, "href", base)
		}
		return true
	})
}

func rewriteAttr(el *htmltree.Element, key string, base *url.URL) {
	val, ok := el.Get(key)
	if !ok || !isRelativePath(val) {
		return
	}

	ref, err := url.Parse(val)
	if err != nil {
		return
	}
	resolved := base.ResolveReference(ref)

	// Security: keep targets under base (prevent traversal out of the tree)
	if resolved.Host != base.Host || !isPathUnderDir(resolved.Path, base.Path) {
		return
	}
	el.Set(key, resolved.String())
}

// isRelativePath returns true if the target should be resolved.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}

	// Skip fragments and protocol-relative URLs
	if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}

	// Skip anything with a scheme (http:, mailto:, data:, ...)
	if u, err := url.Parse(p); err != nil || u.Scheme != "" {
		return false
	}

	// Skip absolute paths
	return !strings.HasPrefix(p, "/")
}

// isPathUnderDir checks that p lies under the directory of base.
func isPathUnderDir(p, basePath string) bool {
	dir := basePath
	if dir == "" {
		return true
	}
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir) + "/"
	}
	return strings.HasPrefix(path.Clean(p)+"/", path.Clean(dir)+"/") || path.Clean(dir) == "/"
}
