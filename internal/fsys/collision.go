package fsys

import (
	"fmt"
	"path/filepath"
	"strings"

	"astrocopy/internal/stage"
)

// MaxCollisionSuffix is the highest " (NN)" suffix tried before giving up.
const MaxCollisionSuffix = 99

// AvailableTarget returns dst when nothing exists there, otherwise the first
// "{base} (NN){ext}" sibling that is free.
func AvailableTarget(exists func(string) bool, dst string) (string, error) {
	if !exists(dst) {
		return dst, nil
	}
	dir := filepath.Dir(dst)
	ext := filepath.Ext(dst)
	base := strings.TrimSuffix(filepath.Base(dst), ext)
	for seq := 1; seq <= MaxCollisionSuffix; seq++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%02d)%s", base, seq, ext))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", stage.Wrap(stage.ErrCollision, "copy", "resolve target",
		fmt.Sprintf("%d files already named like %s", MaxCollisionSuffix+1, dst), nil)
}
