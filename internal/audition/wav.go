package audition

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-svf-notetable/internal/simdops"
)

// ErrInvalidWAV is returned when a file is not a readable PCM WAV.
var ErrInvalidWAV = errors.New("invalid WAV file")

// WriteWAV encodes mono samples in [-1, 1] as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	scaled := make([]float64, len(samples))
	if len(samples) > 0 {
		simdops.For[float64]().Scale(scaled, samples, wavFullScale)
	}
	data := make([]int, len(scaled))
	for i, v := range scaled {
		data[i] = int(max(wavMinSample, min(wavMaxSample, math.Round(v))))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// ReadWAV decodes a mono or multichannel PCM WAV and returns its first
// channel normalized to [-1, 1], with the sample rate.
func ReadWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	channels := max(int(dec.NumChans), 1)
	fullScale := math.Exp2(float64(dec.BitDepth) - 1)
	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		out[i] = float64(buf.Data[i*channels]) / fullScale
	}
	return out, int(dec.SampleRate), nil
}
