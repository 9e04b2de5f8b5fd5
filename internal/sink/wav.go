package sink

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV writes a 16-bit PCM RIFF/WAVE stream. The header sizes are patched on
// Close, so the writer must be seekable.
type WAV struct {
	enc   *wav.Encoder
	buf   *audio.IntBuffer
	wrote bool
}

// NewWAV returns a WAV sink writing to w.
func NewWAV(w io.WriteSeeker, sampleRate, channels int) (*WAV, error) {
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	return &WAV{
		enc: wav.NewEncoder(w, sampleRate, 16, channels, 1),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends pcm to the data chunk.
func (s *WAV) Write(pcm []int16) error {
	if len(pcm) == 0 {
		return nil
	}
	data := s.buf.Data[:0]
	for _, v := range pcm {
		data = append(data, int(v))
	}
	s.buf.Data = data
	s.wrote = true
	return s.enc.Write(s.buf)
}

// Close finalizes the header. The underlying writer is left open.
func (s *WAV) Close() error {
	if !s.wrote {
		// An empty program still gets a valid header and data chunk.
		s.buf.Data = s.buf.Data[:0]
		if err := s.enc.Write(s.buf); err != nil {
			return err
		}
	}
	return s.enc.Close()
}
