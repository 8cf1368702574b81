package player

import (
	"encoding/binary"
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

const (
	opusSampleRate = 48000
	opusPreroll    = 3840 // 80 ms at 48 kHz
	maxOggFrame    = 8192
)

var (
	errUnknownOggCodec = errors.New("ogg: unknown codec (not Opus or Vorbis)")
	errOpusHead        = errors.New("opus: invalid OpusHead")
	errVorbisHeader    = errors.New("vorbis: invalid identification header")
	errVorbisNotReady  = errors.New("vorbis: headers incomplete")
)

// oggCodec decodes the packets of one Ogg logical stream.
type oggCodec interface {
	sampleRate() int
	channels() int
	// preSkip is the number of leading frames to drop.
	preSkip() int
	// preroll is how many frames before a seek target decoding must start.
	preroll() int
	// addHeader consumes a header packet and reports whether all headers
	// are in. A nil packet only reports.
	addHeader(packet []byte) (bool, error)
	// decode writes interleaved samples to pcm and returns the frame count.
	decode(packet []byte, pcm []float32) (int, error)
	reset() error
}

func detectOggCodec(first []byte) (oggCodec, error) {
	switch {
	case len(first) >= 8 && string(first[:8]) == "OpusHead":
		return newOpusCodec(first)
	case len(first) >= 7 && first[0] == 0x01 && string(first[1:7]) == "vorbis":
		return newVorbisCodec(first)
	default:
		return nil, errUnknownOggCodec
	}
}

type opusCodec struct {
	decoder *opus.Decoder
	ch      int
	skip    int
}

func newOpusCodec(head []byte) (*opusCodec, error) {
	if len(head) < 19 || head[8] != 1 {
		return nil, errOpusHead
	}
	ch := int(head[9])
	if ch < 1 || ch > 2 {
		return nil, errOpusHead
	}
	decoder, err := opus.NewDecoder(opusSampleRate, ch)
	if err != nil {
		return nil, err
	}
	return &opusCodec{
		decoder: decoder,
		ch:      ch,
		skip:    int(binary.LittleEndian.Uint16(head[10:12])),
	}, nil
}

func (c *opusCodec) sampleRate() int { return opusSampleRate }
func (c *opusCodec) channels() int   { return c.ch }
func (c *opusCodec) preSkip() int    { return c.skip }
func (c *opusCodec) preroll() int    { return opusPreroll }

// addHeader accepts the OpusTags packet. OpusHead was parsed on creation.
func (c *opusCodec) addHeader([]byte) (bool, error) { return true, nil }

func (c *opusCodec) decode(packet []byte, pcm []float32) (int, error) {
	return c.decoder.DecodeFloat32(packet, pcm)
}

// The decoder conceals discontinuities itself.
func (c *opusCodec) reset() error { return nil }

type vorbisCodec struct {
	decoder *vorbis.Decoder
	ch      int
	rate    int
	headers [][]byte
}

func newVorbisCodec(ident []byte) (*vorbisCodec, error) {
	if len(ident) < 16 || binary.LittleEndian.Uint32(ident[7:11]) != 0 {
		return nil, errVorbisHeader
	}
	return &vorbisCodec{
		ch:      int(ident[11]),
		rate:    int(binary.LittleEndian.Uint32(ident[12:16])),
		headers: [][]byte{ident},
	}, nil
}

func (c *vorbisCodec) sampleRate() int { return c.rate }
func (c *vorbisCodec) channels() int   { return c.ch }
func (c *vorbisCodec) preSkip() int    { return 0 }
func (c *vorbisCodec) preroll() int    { return 0 }

// addHeader collects the comment and setup headers, then builds the decoder.
func (c *vorbisCodec) addHeader(packet []byte) (bool, error) {
	if c.decoder != nil {
		return true, nil
	}
	if packet == nil {
		return false, errVorbisNotReady
	}
	c.headers = append(c.headers, packet)
	if len(c.headers) < 3 {
		return false, nil
	}

	d := &vorbis.Decoder{}
	for _, h := range c.headers {
		if err := d.ReadHeader(h); err != nil {
			return false, err
		}
	}
	c.decoder = d
	c.headers = nil
	return true, nil
}

func (c *vorbisCodec) decode(packet []byte, pcm []float32) (int, error) {
	if c.decoder == nil {
		return 0, errVorbisNotReady
	}
	out, err := c.decoder.Decode(packet)
	if err != nil {
		return 0, err
	}
	n := copy(pcm, out)
	return n / c.ch, nil
}

func (c *vorbisCodec) reset() error {
	if c.decoder != nil {
		c.decoder.Clear()
	}
	return nil
}
