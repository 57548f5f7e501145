package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// LengthPrefixSize is the size of the big-endian frame length prefix.
	LengthPrefixSize = 4

	// MaxFrameSize bounds one encoded envelope. Records are tens of bytes.
	MaxFrameSize = 4096
)

// Framing errors.
var (
	ErrFrameEmpty    = errors.New("frame is empty")
	ErrFrameTooLarge = errors.New("frame too large")
)

// WriteFrame writes data prefixed with its length.
func WriteFrame(w io.Writer, data []byte) error {
	if len(data) == 0 {
		return ErrFrameEmpty
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}
	buf := make([]byte, LengthPrefixSize+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[LengthPrefixSize:], data)
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads one length-prefixed frame. It returns io.EOF only when
// the stream ends cleanly between frames.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(prefix[:])
	if n == 0 {
		return nil, ErrFrameEmpty
	}
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

// WriteRequest validates, encodes and frames req.
func WriteRequest(w io.Writer, req *ConfigRequest) error {
	data, err := EncodeRequest(req)
	if err != nil {
		return err
	}
	return WriteFrame(w, data)
}

// ReadRequest reads and validates one framed request.
func ReadRequest(r io.Reader) (*ConfigRequest, error) {
	data, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(data)
}

// WriteResponse encodes and frames resp.
func WriteResponse(w io.Writer, resp *ConfigResponse) error {
	data, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	return WriteFrame(w, data)
}

// ReadResponse reads one framed response.
func ReadResponse(r io.Reader) (*ConfigResponse, error) {
	data, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(data)
}
