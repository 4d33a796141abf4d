package ports

// Hasher computes content hashes of files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the xxhash of the file at path.
	ComputeFileHash(path string) (uint64, error)
}

// Copier copies build outputs between directories.
type Copier interface {
	// CopyFile copies src to dst, creating parent directories and keeping the file mode.
	CopyFile(src, dst string) error
	// CopyDir copies the tree rooted at src to dst.
	CopyDir(src, dst string) error
}
