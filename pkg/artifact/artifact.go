// Package artifact names and writes output files without ever replacing an
// existing one.
//
// Outputs are written as a set that shares a base name, for example
// scatter.svg and scatter.png. [FreeName] picks the first base name for which no
// file of the set exists: the base itself, then base_0, base_1 and so on.
// [Write] publishes each file through a hard link, which fails rather than
// overwrites if another process claimed the name in the meantime.
package artifact

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

// MaxAttempts bounds how many base names Save tries before giving up.
const MaxAttempts = 10000

// FreeName returns the first free base name in dir for the given extensions.
func FreeName(dir, base string, exts []string) (string, error) {
	free, err := isFree(dir, base, exts)
	if err != nil {
		return "", err
	}
	if free {
		return base, nil
	}
	for i := range MaxAttempts {
		name := fmt.Sprintf("%s_%d", base, i)
		free, err := isFree(dir, name, exts)
		if err != nil {
			return "", err
		}
		if free {
			return name, nil
		}
	}
	return "", errors.New(errors.ErrCodeIO, "no free output name for %s after %d attempts", filepath.Join(dir, base), MaxAttempts)
}

func isFree(dir, base string, exts []string) (bool, error) {
	for _, ext := range exts {
		path := Path(dir, base, ext)
		_, err := os.Lstat(path)
		if err == nil {
			return false, nil
		}
		if !os.IsNotExist(err) {
			return false, errors.Wrap(errors.ErrCodeIO, err, "check %s", path)
		}
	}
	return true, nil
}

// Path joins dir, base and ext into a file path.
func Path(dir, base, ext string) string {
	return filepath.Join(dir, base+"."+ext)
}

// Write stores every artifact as dir/base.<ext> and returns the paths in
// extension order. If any file cannot be written, files already created by
// this call are removed and nothing is left behind.
func Write(dir, base string, artifacts map[string][]byte) ([]string, error) {
	exts := slices.Sorted(maps.Keys(artifacts))
	var written []string
	for _, ext := range exts {
		path := Path(dir, base, ext)
		if err := create(path, artifacts[ext]); err != nil {
			for _, p := range written {
				_ = os.Remove(p)
			}
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// create writes data to a uniquely named temp file and links it to path.
func create(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, path); err != nil {
		if os.IsExist(err) {
			return errors.Wrap(errors.ErrCodeIO, fs.ErrExist, "refusing to overwrite %s", path)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// Save looks for a free base name and writes artifacts under it. It returns
// the chosen base and the written paths. When another writer takes the name
// between lookup and write, Save looks again.
func Save(dir, base string, artifacts map[string][]byte) (string, []string, error) {
	exts := slices.Sorted(maps.Keys(artifacts))
	for range MaxAttempts {
		name, err := FreeName(dir, base, exts)
		if err != nil {
			return "", nil, err
		}
		paths, err := Write(dir, name, artifacts)
		if err == nil {
			return name, paths, nil
		}
		if !stderrors.Is(err, fs.ErrExist) {
			return "", nil, err
		}
	}
	return "", nil, errors.New(errors.ErrCodeIO, "no free output name for %s", filepath.Join(dir, base))
}
