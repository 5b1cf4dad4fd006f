package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// chunkSize is the read granularity. Files stream through the hash in
// fixed chunks so large data files never load fully into memory.
const chunkSize = 1024

// File computes the MD5 digest of the file at path.
//
// Absence is a result, not an error: a file that cannot be opened, or one
// with no content, yields ok=false and a nil error. A read failure after a
// successful open is a real error and carries the cause.
func File(path string) (digest string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, nil
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			total += int64(n)
			h.Write(buf[:n])
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return "", false, fmt.Errorf("read %s: %w", path, rerr)
		}
	}

	if total == 0 {
		return "", false, nil
	}
	return hex.EncodeToString(h.Sum(nil)), true, nil
}
