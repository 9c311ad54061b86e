package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned by ReadAllWithContext when the source exceeds the limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

// ReadAllWithContext reads src into memory while respecting context cancellation.
// A limit <= 0 disables the size check.
func ReadAllWithContext(ctx context.Context, src io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	reader := src
	if limit > 0 {
		// one extra byte tells "exactly limit" apart from "more than limit"
		reader = io.LimitReader(src, limit+1)
	}
	n, err := CopyWithContext(ctx, &buf, reader)
	if err != nil {
		return nil, err
	}
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return buf.Bytes(), nil
}

// CopyWithContext copies from src to dst while respecting context cancellation.
func CopyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 256*1024)
	var written int64
	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if writeErr == nil {
					writeErr = fmt.Errorf("invalid write result")
				}
			}
			written += int64(nw)
			if writeErr != nil {
				return written, writeErr
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}
