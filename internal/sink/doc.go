// Package sink writes interleaved 16-bit PCM to files, streams and audio
// devices.
//
// File sinks (WAV and raw little-endian) are always available. Device sinks
// are compiled in with the "oto" and "portaudio" build tags and are selected
// by name through [OpenDevice].
package sink
