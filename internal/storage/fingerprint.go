package storage

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// fingerprintChunkSize is the read size for streaming hashes, chosen
	// to keep memory flat for multi-gigabyte uploads.
	fingerprintChunkSize = 64 * 1024

	// largeFileThreshold switches fingerprinting to the optimized method.
	largeFileThreshold = 1024 * 1024 * 1024 // 1GB

	// sampleSize is how much of the file head feeds the sample hash.
	sampleSize = 8192
)

// Fingerprint identifies one stored file. FileHash is always the full
// streaming SHA-256. Files up to 1GB additionally get a SHA-1 of the first
// 8KB; larger files get an MD5 over size, mtime and name instead, which is
// cheaper than a second pass over the content.
type Fingerprint struct {
	FileHash         string `json:"file_hash"`
	SampleHash       string `json:"sample_hash,omitempty"`
	MetadataHash     string `json:"metadata_hash,omitempty"`
	FileSize         int64  `json:"file_size"`
	Timestamp        int64  `json:"timestamp"`
	ProcessingMethod string `json:"processing_method"`
}

// GenerateFingerprint fingerprints the file at path.
func GenerateFingerprint(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	fp, err := fingerprintReader(f, info.Size())
	if err != nil {
		return Fingerprint{}, err
	}

	if info.Size() > largeFileThreshold {
		fp.MetadataHash = metadataHash(info.Size(), info.ModTime(), filepath.Base(path))
	}

	return fp, nil
}

// fingerprintReader computes the streaming hashes over r. The sample hash
// covers the first 8KB and is only kept for standard-sized files.
func fingerprintReader(r io.Reader, size int64) (Fingerprint, error) {
	fileHash := sha256.New()
	sampleHash := sha1.New()

	buf := make([]byte, fingerprintChunkSize)
	var read int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			fileHash.Write(chunk)

			if remaining := sampleSize - read; remaining > 0 {
				if int64(n) > remaining {
					chunk = chunk[:remaining]
				}
				sampleHash.Write(chunk)
			}
			read += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Fingerprint{}, fmt.Errorf("read file: %w", err)
		}
	}

	method := "standard"
	fp := Fingerprint{
		FileHash:  hex.EncodeToString(fileHash.Sum(nil)),
		FileSize:  size,
		Timestamp: time.Now().Unix(),
	}
	if size > largeFileThreshold {
		method = "optimized"
	} else {
		fp.SampleHash = hex.EncodeToString(sampleHash.Sum(nil))
	}
	fp.ProcessingMethod = method

	return fp, nil
}

func metadataHash(size int64, mtime time.Time, name string) string {
	sum := md5.Sum(fmt.Appendf(nil, "%d_%d_%s", size, mtime.Unix(), name))
	return hex.EncodeToString(sum[:])
}
