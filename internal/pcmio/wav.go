// Package pcmio provides small WAV read/write/resample helpers shared by
// the pitch-tracker command-line tools, adapted from the teacher's
// fitcommon WAV helpers to the mono PCM shape this domain uses throughout.
package pcmio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadMono decodes a WAV file to mono float32 samples in [-1, 1] (stereo
// and multi-channel files are downmixed by averaging) along with the
// file's native sample rate.
func ReadMono(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("pcmio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("pcmio: invalid wav buffer: %s", path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float32, frames)
	peak := float32(1.0)
	// PCMBuffer.Data is integer sample values at the source bit depth;
	// normalize using the maximum magnitude observed so arbitrary bit
	// depths map into [-1, 1] without assuming 16-bit specifically.
	for _, v := range buf.Data {
		av := float32(v)
		if av < 0 {
			av = -av
		}
		if av > peak {
			peak = av
		}
	}
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += float32(buf.Data[i*ch+c])
		}
		out[i] = (sum / float32(ch)) / peak
	}
	return out, buf.Format.SampleRate, nil
}

// ResampleIfNeeded converts mono float64 samples from fromRate to toRate,
// returning the input unchanged when the rates already match.
func ResampleIfNeeded(in []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// WriteMono writes mono float32 samples to a 16-bit PCM WAV file, creating
// parent directories as needed.
func WriteMono(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ToFloat64 widens a mono float32 buffer to float64, the precision the
// resampler and analyzer-diagnostic packages operate in.
func ToFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// ToFloat32 narrows a mono float64 buffer back to float32 PCM samples.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
