package fsys

import "testing"

// SetBeforeVerify installs fn to run on each written target before it is read
// back for verification.
func SetBeforeVerify(t testing.TB, fn func(dst string)) {
	t.Helper()
	beforeVerify = fn
	t.Cleanup(func() { beforeVerify = nil })
}
