//go:build oto

package sink

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

func init() {
	Register("oto", openOto)
}

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoCh   int
	otoErr  error
)

type otoSink struct {
	pw     *io.PipeWriter
	player *oto.Player
	buf    []byte
}

func openOto(sampleRate, channels int) (Sink, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if err != nil {
			otoErr = fmt.Errorf("sink: oto: %w", err)
			return
		}
		<-ready
		otoCtx, otoRate, otoCh = ctx, sampleRate, channels
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate || otoCh != channels {
		return nil, fmt.Errorf("sink: oto: context already open at %d Hz, %d channels", otoRate, otoCh)
	}

	pr, pw := io.Pipe()
	p := otoCtx.NewPlayer(pr)
	p.Play()
	return &otoSink{pw: pw, player: p}, nil
}

// Write blocks until the player has consumed pcm.
func (s *otoSink) Write(pcm []int16) error {
	s.buf = appendLE(s.buf[:0], pcm)
	_, err := s.pw.Write(s.buf)
	return err
}

// Close drains the player before releasing it.
func (s *otoSink) Close() error {
	if err := s.pw.Close(); err != nil {
		return err
	}
	for s.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := s.player.Err(); err != nil {
		_ = s.player.Close()
		return fmt.Errorf("sink: oto: %w", err)
	}
	return s.player.Close()
}
