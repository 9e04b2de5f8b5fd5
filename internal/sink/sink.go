package sink

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sink consumes interleaved 16-bit PCM frames.
type Sink interface {
	Write(pcm []int16) error
	Close() error
}

// ErrNoDevice is returned when a named device backend is not compiled in.
var ErrNoDevice = errors.New("sink: unknown device")

// Opener opens a device sink for the given format.
type Opener func(sampleRate, channels int) (Sink, error)

var (
	devicesMu sync.Mutex
	devices   = map[string]Opener{}
)

// Register makes a device backend available under name. It panics if the
// name is already taken.
func Register(name string, open Opener) {
	devicesMu.Lock()
	defer devicesMu.Unlock()
	if _, dup := devices[name]; dup {
		panic("sink: Register called twice for device " + name)
	}
	devices[name] = open
}

// Devices lists registered device backends in sorted order.
func Devices() []string {
	devicesMu.Lock()
	defer devicesMu.Unlock()
	names := make([]string, 0, len(devices))
	for n := range devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OpenDevice opens the named device backend.
func OpenDevice(name string, sampleRate, channels int) (Sink, error) {
	devicesMu.Lock()
	open, ok := devices[name]
	devicesMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrNoDevice, name, Devices())
	}
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	return open(sampleRate, channels)
}

func checkFormat(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sink: invalid sample rate %d", sampleRate)
	}
	if channels != 1 && channels != 2 {
		return fmt.Errorf("sink: invalid channel count %d", channels)
	}
	return nil
}

// appendLE appends pcm to dst as little-endian 16-bit words.
func appendLE(dst []byte, pcm []int16) []byte {
	for _, s := range pcm {
		dst = append(dst, byte(s), byte(uint16(s)>>8))
	}
	return dst
}
