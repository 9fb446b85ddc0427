package wiivff

import (
	"bytes"
	"io"
)

// Image wraps a byte source and provides bounds-checked random access reads.
// The total extent must be known in advance; it is the upper bound for all
// offset validation.
type Image struct {
	r    io.ReaderAt
	size int64
}

// NewImage wraps an io.ReaderAt of the given total size.
func NewImage(r io.ReaderAt, size int64) *Image {
	return &Image{r: r, size: size}
}

// NewImageFromBytes wraps an in-memory buffer.
func NewImageFromBytes(b []byte) *Image {
	return &Image{r: bytes.NewReader(b), size: int64(len(b))}
}

// Len returns the total image length in bytes.
func (img *Image) Len() int64 {
	return img.size
}

// ReadRegion reads n bytes starting at off. A region that does not lie
// entirely within the image is ErrTruncatedImage.
func (img *Image) ReadRegion(off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off+n > img.size {
		return nil, formatErrf(ErrTruncatedImage, "region [%#x, %#x) exceeds image length %#x", off, off+n, img.size)
	}
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if _, err := img.r.ReadAt(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}
