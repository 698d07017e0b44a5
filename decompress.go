package plumage

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionZlib
	compressionBzip2
)

// detectCompression matches the leading bytes of a file against the magic
// numbers of the compression formats summary statistics actually ship in.
func detectCompression(prefix []byte) compression {
	switch {
	case len(prefix) >= 2 && prefix[0] == 0x1f && prefix[1] == 0x8b:
		return compressionGzip
	case len(prefix) >= 3 && prefix[0] == 'B' && prefix[1] == 'Z' && prefix[2] == 'h':
		return compressionBzip2
	case len(prefix) >= 2 && prefix[0] == 0x78 &&
		(prefix[1] == 0x01 || prefix[1] == 0x5e || prefix[1] == 0x9c || prefix[1] == 0xda):
		return compressionZlib
	}

	return compressionNone
}

// MaybeDecompress wraps f in a decompressing reader when its leading bytes
// carry a known compression signature. The file offset is rewound to the
// start either way, so callers that need to re-read (for example, after
// sniffing the delimiter) can Seek f and call MaybeDecompress again. Closing
// the returned reader never closes f itself: the caller owns the file and
// may keep using it after discarding the reader.
func MaybeDecompress(f *os.File) (io.ReadCloser, error) {
	prefix := make([]byte, 3)
	n, err := io.ReadFull(f, prefix)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, pfx.Err(err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	switch detectCompression(prefix[:n]) {
	case compressionGzip:
		r, err := gzip.NewReader(f)
		return r, pfx.Err(err)
	case compressionZlib:
		r, err := zlib.NewReader(f)
		return r, pfx.Err(err)
	case compressionBzip2:
		return &readCloserFaker{bzip2.NewReader(f)}, nil
	}

	return &readCloserFaker{f}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed.
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
