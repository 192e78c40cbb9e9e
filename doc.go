// Package notetable builds note-indexed coefficient tables for a Chamberlin
// state-variable filter (SVF) running on a small embedded synthesizer.
//
// The synth engine looks up its filter coefficient by MIDI note number in a
// precomputed table instead of evaluating a sine at audio rate. This package
// computes that table, validates it, and writes it as a compilable artifact.
//
// # Quick Start
//
// Build the table of the original target and write the header the firmware
// includes:
//
//	table, err := notetable.BuildTable(16384, 80, 6000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := notetable.Serialize(table, "MiniSynthNoteTable.h"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Mapping
//
// For each note n in 0..127 the builder computes
//
//	t  = n / 127
//	fc = minFc · (maxFc/minFc)^t
//	f  = min(2·sin(π·fc/fs), clamp)
//
// The cutoff sweeps the range with equal ratios per note, which suits both
// pitch and cutoff perception. The coefficient grows with fc up to fs/2, so
// the table never decreases. At 1.0 and above the SVF integrator runs away
// at high resonance; [DefaultStabilityClamp] keeps a margin below that and
// can be tuned through [Config].Clamp.
//
// [CurveKeyTrack] is an alternative mapping where the cutoff follows the
// played pitch ([MIDIToFrequency]) scaled by [Config].KeyTrackRatio.
//
// # Errors
//
// Configuration problems are detected before any computation and reported
// as [*ConfigurationError] (matching [ErrConfiguration]). Artifact write and
// read failures are reported as [*IOError] (matching [ErrIO]). In both cases
// nothing partial is produced: no table is returned and any existing
// artifact on disk is left as it was.
//
// # Artifacts
//
// [Table.WriteFile] renders either a C header ([FormatC]) or a Go source file
// ([FormatGo]) with one entry per line in ascending note order, each tagged
// with its note number. The default identifier is [DefaultIdentifier] and the
// header uses #pragma once, so regenerating never breaks downstream references.
// [ReadArtifact] parses an artifact back for verification.
//
// # Thread Safety
//
// A [Table] is immutable and safe for concurrent reads. Builds share no
// state; [BuildAll] builds several configurations concurrently.
package notetable
