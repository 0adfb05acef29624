package fsys

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// OS implements FileSystem on the local disk.
type OS struct {
	// Verify reads every copy back, compares its SHA-256 with the source and
	// removes the target on mismatch.
	Verify bool
	// PreserveTimes carries the source modification time over to the copy.
	PreserveTimes bool
}

// NewOS returns an OS filesystem with the given copy behaviour.
func NewOS(verify, preserveTimes bool) *OS {
	return &OS{Verify: verify, PreserveTimes: preserveTimes}
}

func (o *OS) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (o *OS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (o *OS) Files(dir string) ([]string, error) {
	return o.list(dir, false)
}

func (o *OS) Subdirs(dir string) ([]string, error) {
	return o.list(dir, true)
}

func (o *OS) list(dir string, wantDirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() != wantDirs {
			continue
		}
		if !wantDirs && !entry.Type().IsRegular() {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(out)
	return out, nil
}

func (o *OS) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (o *OS) SetModTime(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}

func (o *OS) CopyFile(src, dst string) (CopyResult, error) {
	target, err := AvailableTarget(o.FileExists, dst)
	if err != nil {
		return CopyResult{}, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return CopyResult{}, fmt.Errorf("stat source: %w", err)
	}

	written, err := copyExclusive(src, target, o.Verify)
	if err != nil {
		return CopyResult{}, err
	}
	if written != srcInfo.Size() {
		_ = os.Remove(target)
		return CopyResult{}, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	if o.PreserveTimes {
		if err := os.Chtimes(target, time.Now(), srcInfo.ModTime()); err != nil {
			return CopyResult{}, fmt.Errorf("preserve times: %w", err)
		}
	}
	return CopyResult{Target: target, Bytes: written}, nil
}

// beforeVerify runs on the written target before it is read back for
// verification.
var beforeVerify func(dst string)

// copyExclusive streams src into a newly created dst. With verify set, the
// source is hashed while streaming and dst is read back from disk and hashed
// after closing; dst is removed when the digests differ.
func copyExclusive(src, dst string, verify bool) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, fmt.Errorf("target appeared during copy: %w", err)
		}
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	var reader io.Reader = in
	var srcHasher hash.Hash
	if verify {
		srcHasher = sha256.New()
		reader = io.TeeReader(in, srcHasher)
	}

	written, err := io.Copy(out, reader)
	if err != nil {
		_ = os.Remove(dst)
		return 0, err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return 0, err
	}

	if verify {
		if beforeVerify != nil {
			beforeVerify(dst)
		}
		sum, err := hashFile(dst)
		if err != nil {
			_ = os.Remove(dst)
			return 0, fmt.Errorf("verify copy: %w", err)
		}
		if !bytes.Equal(srcHasher.Sum(nil), sum) {
			_ = os.Remove(dst)
			return 0, fmt.Errorf("copy hash mismatch: %s differs from %s", dst, src)
		}
	}
	return written, nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
