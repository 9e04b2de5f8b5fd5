// Package generator renders a program into 16-bit PCM.
//
// A [Generator] walks the program's event timeline, applies each event to
// the operators and voices it touches, and renders the active voices one
// block at a time. Every voice is driven by a carrier operator whose output
// may be shaped by other operators through the program's modulation lists.
// Voices are panned into a stereo mix, clipped to [-1, 1] and quantized;
// mono output is the average of the two channels.
//
// Rendering is pull-based and single-threaded. All scratch memory is
// allocated by [New]; [Generator.Run] does not allocate. The program is only
// read, so separate generators may share one.
//
// Modulation graphs may contain cycles. An operator reached again while it
// is already being rendered contributes silence for that pass.
package generator
