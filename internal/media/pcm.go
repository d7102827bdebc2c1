package media

import (
	"fmt"
	"os"
	"path"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// PCM decodes an audio file into a mono sample buffer for analysis.
// Failure here is fatal to chart generation and surfaced to the caller
// before play can start.
func PCM(file string) ([]float64, int, error) {
	if path.Ext(file) == ".wav" {
		return pcmWav(file)
	}
	return pcmStream(file)
}

func pcmWav(file string) ([]float64, int, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, 0, err
	}
	defer f.Close()

	d := gowav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if nil != err {
		return nil, 0, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, int(d.SampleRate), nil
	}
	return mono(buf), buf.Format.SampleRate, nil
}

// mono averages the channels of an integer PCM buffer down to one
// float channel scaled to -1..1.
func mono(buf *audio.IntBuffer) []float64 {
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	scale := float64(int(1) << (depth - 1))
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i+c])
		}
		samples = append(samples, sum/float64(channels)/scale)
	}
	return samples
}

func pcmStream(file string) ([]float64, int, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, 0, err
	}
	streamer, format, err := decode(f, path.Ext(file))
	if nil != err {
		return nil, 0, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	defer streamer.Close()

	samples := make([]float64, 0, streamer.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, s := range buf[:n] {
			samples = append(samples, (s[0]+s[1])/2)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); nil != err {
		return nil, 0, err
	}
	return samples, int(format.SampleRate), nil
}
