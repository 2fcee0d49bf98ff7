package checkpoint

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// manifestName is the digest index written into every snapshot
// directory. It maps slash-separated relative paths to xxhash digests
// and doubles as the file list during restore.
const manifestName = "manifest.json"

// writeSnapshot copies every file under the destination tree, except the
// metadata directory, into snapDir and records a digest manifest.
func (s *Service) writeSnapshot(ctx context.Context, snapDir string) error {
	if err := os.MkdirAll(snapDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create snapshot directory")
	}

	manifest := make(map[string]string)

	walkErr := filepath.WalkDir(s.dest, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.dest, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == domain.ModforgeDirName {
				return fs.SkipDir
			}
			return os.MkdirAll(filepath.Join(snapDir, rel), domain.DirPerm)
		}

		digest, err := copyAndDigest(path, filepath.Join(snapDir, rel))
		if err != nil {
			return err
		}
		manifest[filepath.ToSlash(rel)] = digest

		return nil
	})
	if walkErr != nil {
		return zerr.Wrap(walkErr, "failed to snapshot destination tree")
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal snapshot manifest")
	}

	return os.WriteFile(filepath.Join(snapDir, manifestName), data, domain.FilePerm)
}

// restoreSnapshot clears the destination tree and copies the snapshot
// back in, verifying every file against the recorded digest.
func (s *Service) restoreSnapshot(ctx context.Context, snapDir string, progress ports.ProgressFunc) error {
	manifest, err := readManifest(snapDir)
	if err != nil {
		return err
	}

	if err := clearDestination(s.dest); err != nil {
		return err
	}

	// Restore in sorted order so parents come before children and runs
	// are reproducible.
	paths := make([]string, 0, len(manifest))
	for rel := range manifest {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	for i, rel := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		if progress != nil {
			progress(domain.ProgressUpdate{
				Phase:   domain.PhaseRollingBack,
				Current: i + 1,
				Total:   len(paths),
				Message: rel,
			})
		}

		src := filepath.Join(snapDir, filepath.FromSlash(rel))
		dst := filepath.Join(s.dest, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to recreate directory")
		}

		digest, err := copyAndDigest(src, dst)
		if err != nil {
			return err
		}
		if digest != manifest[rel] {
			err := zerr.New("restored file does not match snapshot digest")
			err = zerr.With(err, "path", rel)
			err = zerr.With(err, "want", manifest[rel])
			return zerr.With(err, "got", digest)
		}
	}

	return nil
}

func readManifest(snapDir string) (map[string]string, error) {
	//nolint:gosec // Path is constructed from the trusted snapshots directory
	data, err := os.ReadFile(filepath.Join(snapDir, manifestName))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read snapshot manifest")
	}

	var manifest map[string]string
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse snapshot manifest")
	}

	return manifest, nil
}

// clearDestination removes everything under the destination except the
// metadata directory.
func clearDestination(dest string) error {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return zerr.Wrap(err, "failed to list destination tree")
	}

	for _, entry := range entries {
		if entry.Name() == domain.ModforgeDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dest, entry.Name())); err != nil {
			return zerr.Wrap(err, "failed to clear destination tree")
		}
	}

	return nil
}

// copyAndDigest copies src to dst and returns the xxhash digest of the
// content as a hex string.
func copyAndDigest(src, dst string) (string, error) {
	//nolint:gosec // Paths are constructed from trusted roots
	in, err := os.Open(src)
	if err != nil {
		return "", zerr.Wrap(err, "failed to open file for copy")
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // Paths are constructed from trusted roots
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return "", zerr.Wrap(err, "failed to create file for copy")
	}

	hasher := xxhash.New()
	_, copyErr := io.Copy(io.MultiWriter(out, hasher), in)
	closeErr := out.Close()

	if copyErr != nil {
		return "", zerr.Wrap(copyErr, "failed to copy file")
	}
	if closeErr != nil {
		return "", zerr.Wrap(closeErr, "failed to flush copied file")
	}

	return strconv.FormatUint(hasher.Sum64(), 16), nil
}
