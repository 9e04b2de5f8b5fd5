// Package time computes time-domain statistics of rendered audio, either
// from float samples or block by block from interleaved 16-bit PCM.
package time
