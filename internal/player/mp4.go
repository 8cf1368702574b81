package player

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// mp4Stream decodes the samples of an MP4 container one access unit at a
// time, buffering the decoded frames between Stream calls. AAC and ALAC
// tracks are supported.
type mp4Stream struct {
	container *m4a.Reader
	decoder   unitDecoder
	closer    io.Closer
	total     int
	idx       int
	err       error

	pending [][2]float64
	offset  int
}

// unitDecoder turns one container sample into stereo frames.
type unitDecoder interface {
	decode(data []byte) ([][2]float64, error)
	close()
}

func decodeMP4(src io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(src)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var decoder unitDecoder
	switch container.Codec() {
	case m4a.CodecAAC:
		decoder, err = newAACDecoder(container)
	case m4a.CodecALAC:
		decoder, err = newALACDecoder(container)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s in mp4", ErrUnsupportedFormat, container.Codec())
	}
	if err != nil {
		return nil, beep.Format{}, err
	}

	rate := container.SampleRate()
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp4Stream{
		container: container,
		decoder:   decoder,
		closer:    src,
		total:     int(container.Duration().Seconds() * float64(rate)),
	}, format, nil
}

type aacDecoder struct {
	faad     *faad2.Decoder
	channels int
}

func newAACDecoder(container *m4a.Reader) (*aacDecoder, error) {
	ctx := context.Background()
	decoder, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, err
	}
	if err := decoder.Init(ctx, container.CodecConfig()); err != nil {
		decoder.Close(ctx)
		return nil, err
	}
	return &aacDecoder{faad: decoder, channels: int(container.Channels())}, nil
}

func (d *aacDecoder) decode(data []byte) ([][2]float64, error) {
	pcm, err := d.faad.Decode(context.Background(), data)
	if err != nil {
		return nil, err
	}
	return stereoFrames(pcm, d.channels), nil
}

func (d *aacDecoder) close() { d.faad.Close(context.Background()) }

// alacFrameSize is the frames per packet ALAC encoders write by default.
const alacFrameSize = 4096

type alacDecoder struct {
	alac       *alac.Alac
	channels   int
	sampleSize int
}

func newALACDecoder(container *m4a.Reader) (*alacDecoder, error) {
	d := &alacDecoder{
		channels:   int(container.Channels()),
		sampleSize: int(container.SampleSize()),
	}
	if d.sampleSize != 16 && d.sampleSize != 24 {
		return nil, fmt.Errorf("%w: %d-bit alac", ErrUnsupportedFormat, d.sampleSize)
	}
	decoder, err := alac.NewWithConfig(alac.Config{
		SampleRate:  int(container.SampleRate()),
		SampleSize:  d.sampleSize,
		NumChannels: d.channels,
		FrameSize:   alacFrameSize,
	})
	if err != nil {
		return nil, err
	}
	d.alac = decoder
	return d, nil
}

func (d *alacDecoder) decode(data []byte) ([][2]float64, error) {
	return pcmBytesToFrames(d.alac.Decode(data), d.sampleSize, d.channels), nil
}

func (d *alacDecoder) close() {}

// pcmBytesToFrames converts little-endian signed PCM of 16 or 24 bits to
// stereo frames, duplicating mono.
func pcmBytesToFrames(data []byte, bits, channels int) [][2]float64 {
	width := bits / 8
	stride := width * channels
	if stride == 0 {
		return nil
	}
	scale := float64(int64(1) << (bits - 1))

	sample := func(off int) float64 {
		var v int32
		for b := width - 1; b >= 0; b-- {
			v = v<<8 | int32(data[off+b])
		}
		shift := 32 - bits
		return float64(v<<shift>>shift) / scale
	}

	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := sample(off)
		right := left
		if channels > 1 {
			right = sample(off + width)
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

func (s *mp4Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	for n < len(samples) {
		if s.offset < len(s.pending) {
			c := copy(samples[n:], s.pending[s.offset:])
			s.offset += c
			n += c
			continue
		}

		if s.idx >= s.container.SampleCount() {
			return n, n > 0
		}

		data, err := s.container.ReadSample(s.idx)
		if err != nil {
			s.err = err
			return n, n > 0
		}
		s.idx++

		frames, err := s.decoder.decode(data)
		if err != nil {
			s.err = err
			return n, n > 0
		}
		s.pending = frames
		s.offset = 0
	}
	return n, true
}

func (s *mp4Stream) Err() error { return s.err }

func (s *mp4Stream) Len() int { return s.total }

func (s *mp4Stream) Position() int {
	pos := s.container.SampleTime(s.idx)
	return int(pos.Seconds() * float64(s.container.SampleRate()))
}

func (s *mp4Stream) Seek(p int) error {
	p = max(min(p, s.total), 0)
	rate := s.container.SampleRate()
	s.idx = s.container.SeekToTime(time.Duration(float64(p) / float64(rate) * float64(time.Second)))
	s.pending = nil
	s.offset = 0
	s.err = nil
	return nil
}

func (s *mp4Stream) Close() error {
	s.decoder.close()
	return s.closer.Close()
}
