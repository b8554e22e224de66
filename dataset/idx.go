package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// IDX magic numbers: two zero bytes, the element type (0x08 = unsigned byte)
// and the number of dimensions.
const (
	imageMagic = 0x00000803
	labelMagic = 0x00000801
)

// idxImages is the decoded payload of an idx3-ubyte file.
type idxImages struct {
	count  int
	rows   int
	cols   int
	pixels []uint8
}

// openIDX opens path+".gz" when it exists, path otherwise. The returned
// closer releases both the gzip stream and the file.
func openIDX(path string) (io.Reader, func() error, string, error) {
	if f, err := os.Open(path + ".gz"); err == nil {
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, path + ".gz", errors.NewDatasetLoadError(path+".gz", "invalid gzip stream", err)
		}
		closer := func() error {
			return errors.CombineErrors(zr.Close(), f.Close())
		}
		return zr, closer, path + ".gz", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, path, errors.NewDatasetLoadError(path, "cannot open", err)
	}
	return bufio.NewReader(f), f.Close, path, nil
}

func readImagesFile(path string, side int) (_ *idxImages, err error) {
	r, closer, name, err := openIDX(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = errors.NewDatasetLoadError(name, "close", cerr)
		}
	}()
	return readImages(r, name, side)
}

func readLabelsFile(path string, count int) (_ []uint8, err error) {
	r, closer, name, err := openIDX(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = errors.NewDatasetLoadError(name, "close", cerr)
		}
	}()
	return readLabels(r, name, count)
}

// readImages decodes an idx3-ubyte stream: magic, count, rows, cols as
// big-endian uint32 followed by count*rows*cols pixel bytes. Images must be
// side×side; the extent is checked before the payload is read.
func readImages(r io.Reader, name string, side int) (*idxImages, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.NewDatasetLoadError(name, "truncated header", err)
	}
	if header[0] != imageMagic {
		return nil, errors.NewDatasetLoadError(name, fmt.Sprintf("bad magic number 0x%08x, want 0x%08x", header[0], imageMagic), nil)
	}
	if int(header[2]) != side || int(header[3]) != side {
		return nil, errors.NewDatasetLoadError(name,
			fmt.Sprintf("image extent %dx%d, want %dx%d", header[2], header[3], side, side), nil)
	}

	images := &idxImages{
		count: int(header[1]),
		rows:  side,
		cols:  side,
	}
	pixels, err := readPayload(r, int64(header[1])*int64(side)*int64(side))
	if err != nil {
		return nil, errors.NewDatasetLoadError(name, "truncated payload", err)
	}
	images.pixels = pixels
	return images, nil
}

// readLabels decodes an idx1-ubyte stream: magic and count as big-endian
// uint32 followed by count label bytes. count must equal want.
func readLabels(r io.Reader, name string, want int) ([]uint8, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.NewDatasetLoadError(name, "truncated header", err)
	}
	if header[0] != labelMagic {
		return nil, errors.NewDatasetLoadError(name, fmt.Sprintf("bad magic number 0x%08x, want 0x%08x", header[0], labelMagic), nil)
	}
	if int64(header[1]) != int64(want) {
		return nil, errors.NewDatasetLoadError(name, fmt.Sprintf("%d labels for %d images", header[1], want), nil)
	}

	labels, err := readPayload(r, int64(header[1]))
	if err != nil {
		return nil, errors.NewDatasetLoadError(name, "truncated payload", err)
	}
	return labels, nil
}

// payloadChunk caps the initial allocation of readPayload. The buffer grows
// only as bytes arrive, so a count larger than the file ends in
// io.ErrUnexpectedEOF.
const payloadChunk = 1 << 20

func readPayload(r io.Reader, n int64) ([]uint8, error) {
	var buf bytes.Buffer
	buf.Grow(int(min(n, payloadChunk)))
	got, err := io.CopyN(&buf, r, n)
	if err == io.EOF && got < n {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
