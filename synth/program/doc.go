// Package program defines the immutable score consumed by the generator.
//
// A [Program] is an ordered list of [Event] values. Each event waits a
// number of milliseconds after the previous one and then updates operators
// ([OpData]) and, optionally, the voice it targets ([VoiceData]). Only the
// parameters flagged in an update change; everything else keeps its
// current runtime value.
//
// Operators modulate each other through per-role lists of operator ids
// ([ModLists]). The lists may form cycles; the generator silences the
// operator that closes a cycle instead of recursing forever.
//
// Programs are built in Go or decoded from YAML documents with [Decode] and
// [Load].
package program
