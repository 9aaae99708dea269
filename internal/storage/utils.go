package storage

import (
	"github.com/google/uuid"
)

// GenerateFileName builds a UUID-based stored filename with the original
// extension, so uploads never collide and never leak user-supplied names
// into the filesystem.
func GenerateFileName(extension string) string {
	newUUID := uuid.New().String()
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}

// sizeWriter counts bytes written through it.
type sizeWriter struct {
	size int64
}

func (sw *sizeWriter) Write(p []byte) (int, error) {
	n := len(p)
	sw.size += int64(n)
	return n, nil
}

// Size returns the total number of bytes written.
func (sw *sizeWriter) Size() int64 {
	return sw.size
}

// NewSizeWriter creates a byte-counting writer for measuring upload sizes
// while streaming.
func NewSizeWriter() *sizeWriter {
	return &sizeWriter{}
}
