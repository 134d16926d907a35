package audio

import (
	"bytes"
	"errors"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV reads a WAV file and returns mono float32 PCM resampled to the
// given rate, ready to feed a whisper pipeline.
func LoadWAV(path string, rate int) ([]float32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	samples, srcRate, err := DecodeWAV(b)
	if err != nil {
		return nil, err
	}
	if srcRate != rate {
		samples = ResampleLinear(samples, srcRate, rate)
	}
	return samples, nil
}

// DecodeWAV decodes a WAV blob into mono float32 samples in [-1,1] and
// returns the source sample rate.
func DecodeWAV(b []byte) ([]float32, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(b))
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, 0, err
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, errors.New("empty wav buffer")
	}
	out := normalize(buf)
	out = downmix(out, channels(buf))
	sr := int(dec.SampleRate)
	if sr == 0 && buf.Format != nil {
		sr = buf.Format.SampleRate
	}
	if sr == 0 {
		sr = 16000
	}
	return out, sr, nil
}

func channels(buf *gaudio.IntBuffer) int {
	if buf.Format != nil && buf.Format.NumChannels > 1 {
		return buf.Format.NumChannels
	}
	return 1
}

// normalize scales integer PCM to float32 [-1,1] using the source bit depth.
func normalize(buf *gaudio.IntBuffer) []float32 {
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	maxInt := 1 << (bitDepth - 1)
	if maxInt <= 0 {
		maxInt = 32768
	}
	max := float32(maxInt)
	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v) / max
	}
	return out
}

// downmix averages interleaved channels into mono.
func downmix(samples []float32, ch int) []float32 {
	if ch <= 1 {
		return samples
	}
	n := len(samples) / ch
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += samples[i*ch+c]
		}
		out[i] = sum / float32(ch)
	}
	return out
}

// ResampleLinear resamples PCM32F from inRate to outRate using linear
// interpolation.
func ResampleLinear(samples []float32, inRate, outRate int) []float32 {
	if inRate <= 0 || outRate <= 0 || inRate == outRate || len(samples) == 0 {
		if inRate == outRate {
			return append([]float32(nil), samples...)
		}
		return samples
	}
	ratio := float64(outRate) / float64(inRate)
	outLen := int(float64(len(samples)) * ratio)
	if outLen <= 1 {
		outLen = 1
	}
	out := make([]float32, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		i0 := int(srcPos)
		if i0 >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(srcPos - float64(i0))
		out[i] = samples[i0]*(1-frac) + samples[i0+1]*frac
	}
	return out
}
