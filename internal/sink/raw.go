package sink

import "io"

// Raw writes headerless little-endian 16-bit PCM.
type Raw struct {
	w   io.Writer
	buf []byte
}

// NewRaw returns a raw PCM sink writing to w.
func NewRaw(w io.Writer) *Raw {
	return &Raw{w: w}
}

// Write encodes pcm and writes it in one call.
func (r *Raw) Write(pcm []int16) error {
	r.buf = appendLE(r.buf[:0], pcm)
	_, err := r.w.Write(r.buf)
	return err
}

// Close closes the underlying writer if it is an io.Closer.
func (r *Raw) Close() error {
	if c, ok := r.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
