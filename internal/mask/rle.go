package mask

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	headerLen = 9
	maxRun    = 65535
)

// ErrCorruptMask indicates an encoded mask payload that cannot be decoded.
var ErrCorruptMask = errors.New("corrupt mask payload")

// Encode converts a bitmap to its compressed run-length representation.
func Encode(b Bitmap) ([]byte, error) {
	if b.Width > maxRun || b.Height > maxRun {
		return nil, fmt.Errorf("mask %dx%d exceeds encodable dimensions", b.Width, b.Height)
	}

	runs := make([]uint16, 0, 64)
	var startValue byte
	if len(b.Pix) > 0 {
		if b.Pix[0] > 127 {
			startValue = 1
		}
		current := startValue
		length := 0
		flush := func() {
			for length > maxRun {
				runs = append(runs, maxRun, 0)
				length -= maxRun
			}
			runs = append(runs, uint16(length))
		}
		for _, v := range b.Pix {
			var bit byte
			if v > 127 {
				bit = 1
			}
			if bit == current {
				length++
				continue
			}
			flush()
			current = bit
			length = 1
		}
		flush()
	}

	payload := make([]byte, headerLen, headerLen+2*len(runs))
	payload[0] = startValue
	binary.LittleEndian.PutUint16(payload[1:3], uint16(b.Height))
	binary.LittleEndian.PutUint16(payload[3:5], uint16(b.Width))
	binary.LittleEndian.PutUint32(payload[5:9], uint32(len(runs)))
	for _, run := range runs {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], run)
		payload = append(payload, buf[:]...)
	}

	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("compress mask: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress mask: %w", err)
	}
	return out.Bytes(), nil
}

// Decode reconstructs a bitmap from its compressed run-length
// representation. Corrupt or truncated payloads yield ErrCorruptMask; Decode
// never panics.
func Decode(encoded []byte) (Bitmap, error) {
	zr, err := zlib.NewReader(bytes.NewReader(encoded))
	if err != nil {
		return Bitmap{}, fmt.Errorf("%w: %v", ErrCorruptMask, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return Bitmap{}, fmt.Errorf("%w: %v", ErrCorruptMask, err)
	}
	if len(data) < headerLen {
		return Bitmap{}, fmt.Errorf("%w: payload too short", ErrCorruptMask)
	}

	startValue := data[0]
	height := int(binary.LittleEndian.Uint16(data[1:3]))
	width := int(binary.LittleEndian.Uint16(data[3:5]))
	numRuns := int(binary.LittleEndian.Uint32(data[5:9]))

	bitmap := NewBitmap(width, height)
	current := startValue != 0
	pos := 0
	offset := headerLen
	for i := 0; i < numRuns; i++ {
		if offset+2 > len(data) {
			break
		}
		run := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if pos+run > len(bitmap.Pix) {
			run = len(bitmap.Pix) - pos
		}
		if run > 0 && current {
			for j := pos; j < pos+run; j++ {
				bitmap.Pix[j] = 255
			}
		}
		pos += run
		current = !current
	}
	return bitmap, nil
}
