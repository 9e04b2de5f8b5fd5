//go:build portaudio

package sink

import (
	"fmt"

	pa "github.com/gordonklaus/portaudio"
)

const paFramesPerBuffer = 1024

func init() {
	Register("portaudio", openPortAudio)
}

// paSink uses the blocking stream API with an interleaved buffer.
type paSink struct {
	stream *pa.Stream
	buf    []int16
	fill   int
}

func openPortAudio(sampleRate, channels int) (Sink, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("sink: portaudio: %w", err)
	}
	s := &paSink{buf: make([]int16, paFramesPerBuffer*channels)}
	stream, err := pa.OpenDefaultStream(0, channels, float64(sampleRate), paFramesPerBuffer, &s.buf)
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("sink: portaudio: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = pa.Terminate()
		return nil, fmt.Errorf("sink: portaudio: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *paSink) Write(pcm []int16) error {
	for len(pcm) > 0 {
		n := copy(s.buf[s.fill:], pcm)
		s.fill += n
		pcm = pcm[n:]
		if s.fill == len(s.buf) {
			if err := s.stream.Write(); err != nil {
				return fmt.Errorf("sink: portaudio: %w", err)
			}
			s.fill = 0
		}
	}
	return nil
}

// Close pads and plays the last partial buffer, then shuts the stream down.
func (s *paSink) Close() error {
	var err error
	if s.fill > 0 {
		clear(s.buf[s.fill:])
		err = s.stream.Write()
		s.fill = 0
	}
	if e := s.stream.Stop(); err == nil {
		err = e
	}
	if e := s.stream.Close(); err == nil {
		err = e
	}
	if e := pa.Terminate(); err == nil {
		err = e
	}
	if err != nil {
		return fmt.Errorf("sink: portaudio: %w", err)
	}
	return nil
}
