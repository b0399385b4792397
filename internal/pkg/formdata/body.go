package formdata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

const readChunkSize = 32 << 10

// readBody accumulates r chunk by chunk and gives up as soon as more than
// limit bytes have arrived. Nothing past the failing chunk is consumed and
// the partial buffer is dropped on every error path.
func readBody(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	var (
		buf   bytes.Buffer
		chunk = make([]byte, readChunkSize)
		total int64
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, newError(KindTransport, ErrTransport.Msg, err)
		}

		n, err := r.Read(chunk)
		if n > 0 {
			total += int64(n)
			if total > limit {
				return nil, ErrPayloadTooLarge
			}
			buf.Write(chunk[:n])
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			return buf.Bytes(), nil
		default:
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, ErrPayloadTooLarge
			}
			return nil, newError(KindTransport, ErrTransport.Msg, err)
		}
	}
}
