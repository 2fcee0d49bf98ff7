package domain

import "path/filepath"

const (
	// ModforgeDirName is the name of the internal metadata directory
	// created inside the destination tree.
	ModforgeDirName = ".modforge"

	// SessionsDirName is the name of the sessions directory.
	SessionsDirName = "sessions"

	// SnapshotsDirName is the name of the snapshots directory.
	SnapshotsDirName = "snapshots"

	// ManifestTOMLName is the primary component manifest file name.
	ManifestTOMLName = "modforge.toml"

	// ManifestYAMLName is the alternative component manifest file name.
	ManifestYAMLName = "modforge.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// SessionsPath returns the sessions directory for a destination tree.
func SessionsPath(dest string) string {
	return filepath.Join(dest, ModforgeDirName, SessionsDirName)
}

// SnapshotsPath returns the snapshots directory for a destination tree.
func SnapshotsPath(dest string) string {
	return filepath.Join(dest, ModforgeDirName, SnapshotsDirName)
}
