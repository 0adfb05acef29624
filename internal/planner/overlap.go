package planner

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoot returns the root the relative chain should be appended to.
// The overlap is the tail of root matching the head of chain, so a root that
// already points into the archive tree (for example /x/m31 for a chain
// starting with m31) resolves back to the archive root.
// Leading portions of chain are tried longest first; when root already ends
// with one of them at a path boundary, that portion is cut off root. A root
// with no overlap is returned unchanged.
func ResolveRoot(root string, chain []string) string {
	root = filepath.Clean(root)
	for k := len(chain); k > 0; k-- {
		stub := filepath.Join(chain[:k]...)
		if stub == "" || stub == "." {
			continue
		}
		if root == stub {
			return ""
		}
		if strings.HasSuffix(root, string(os.PathSeparator)+stub) {
			trimmed := strings.TrimSuffix(root, stub)
			if trimmed != string(os.PathSeparator) {
				trimmed = strings.TrimSuffix(trimmed, string(os.PathSeparator))
			}
			return trimmed
		}
	}
	return root
}
