package player

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gopxl/beep/v2"
)

const oggHeaderSize = 27

var (
	errOggCapture = errors.New("ogg: invalid capture pattern")
	errOggVersion = errors.New("ogg: unsupported version")
	errOggHeaders = errors.New("ogg: incomplete codec headers")
)

// oggPage is one page of the first logical stream. granule is -1 when no
// packet ends on the page.
type oggPage struct {
	granule int64
	packets [][]byte
}

// parseOggPages splits data into pages and packets. Packets spanning pages
// are joined onto the page where they end. Pages of other logical streams
// are skipped.
func parseOggPages(data []byte) ([]oggPage, error) {
	var (
		pages   []oggPage
		partial []byte
		serial  uint32
	)
	for off := 0; off+oggHeaderSize <= len(data); {
		hdr := data[off : off+oggHeaderSize]
		if string(hdr[:4]) != "OggS" {
			return nil, fmt.Errorf("%w at offset %d", errOggCapture, off)
		}
		if hdr[4] != 0 {
			return nil, errOggVersion
		}
		granule := int64(binary.LittleEndian.Uint64(hdr[6:14])) //nolint:gosec // -1 is meaningful
		pageSerial := binary.LittleEndian.Uint32(hdr[14:18])
		nseg := int(hdr[26])

		segStart := off + oggHeaderSize
		if segStart+nseg > len(data) {
			return nil, errors.New("ogg: truncated segment table")
		}
		lacing := data[segStart : segStart+nseg]
		body := segStart + nseg
		size := 0
		for _, l := range lacing {
			size += int(l)
		}
		if body+size > len(data) {
			return nil, errors.New("ogg: truncated page")
		}
		off = body + size

		if len(pages) == 0 {
			serial = pageSerial
		} else if pageSerial != serial {
			continue
		}

		page := oggPage{granule: granule}
		pos := body
		for _, l := range lacing {
			partial = append(partial, data[pos:pos+int(l)]...)
			pos += int(l)
			if l < 255 {
				page.packets = append(page.packets, partial)
				partial = nil
			}
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, errOggCapture
	}
	return pages, nil
}

// oggStream decodes the pages of an Opus or Vorbis stream held in memory.
// Seeking restarts decoding at the closest earlier page, so positions are
// accurate to a packet.
type oggStream struct {
	pages []oggPage
	codec oggCodec

	dataPage, dataPkt int // first audio packet
	page, pkt         int // next packet to decode

	pcm            []float32
	pcmPos, pcmLen int // in frames
	skip           int // frames to drop before output resumes
	pos, total     int
	err            error
}

func decodeOgg(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	pages, err := parseOggPages(data)
	if err != nil {
		return nil, beep.Format{}, err
	}

	s := &oggStream{pages: pages}
	for {
		pkt, ok := s.nextPacket()
		if !ok {
			return nil, beep.Format{}, errOggHeaders
		}
		if s.codec == nil {
			if s.codec, err = detectOggCodec(pkt); err != nil {
				return nil, beep.Format{}, err
			}
			continue
		}
		complete, err := s.codec.addHeader(pkt)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if complete {
			break
		}
	}

	s.dataPage, s.dataPkt = s.page, s.pkt
	s.pcm = make([]float32, maxOggFrame*s.codec.channels())
	s.skip = s.codec.preSkip()
	for i := len(pages) - 1; i >= 0; i-- {
		if pages[i].granule >= 0 {
			s.total = max(int(pages[i].granule)-s.codec.preSkip(), 0)
			break
		}
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(s.codec.sampleRate()),
		NumChannels: s.codec.channels(),
		Precision:   2,
	}
	return s, format, nil
}

func (s *oggStream) nextPacket() ([]byte, bool) {
	for s.page < len(s.pages) {
		if s.pkt < len(s.pages[s.page].packets) {
			p := s.pages[s.page].packets[s.pkt]
			s.pkt++
			return p, true
		}
		s.page++
		s.pkt = 0
	}
	return nil, false
}

func (s *oggStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	ch := s.codec.channels()

	for n < len(samples) {
		if s.pcmPos < s.pcmLen {
			for n < len(samples) && s.pcmPos < s.pcmLen {
				i := s.pcmPos * ch
				left, right := float64(s.pcm[i]), float64(s.pcm[i])
				if ch > 1 {
					right = float64(s.pcm[i+1])
				}
				samples[n] = [2]float64{left, right}
				n++
				s.pcmPos++
				s.pos++
			}
			continue
		}

		pkt, more := s.nextPacket()
		if !more {
			return n, n > 0
		}
		frames, err := s.codec.decode(pkt, s.pcm)
		if err != nil {
			continue // corrupt packet
		}
		s.pcmPos, s.pcmLen = 0, frames
		if s.skip > 0 {
			drop := min(s.skip, frames)
			s.pcmPos = drop
			s.skip -= drop
		}
	}
	return n, true
}

func (s *oggStream) Err() error    { return s.err }
func (s *oggStream) Len() int      { return s.total }
func (s *oggStream) Position() int { return s.pos }
func (s *oggStream) Close() error  { return nil }

func (s *oggStream) Seek(p int) error {
	p = max(min(p, s.total), 0)
	target := int64(p + s.codec.preSkip())

	start, base := s.dataPage, int64(0)
	for i := s.dataPage; i < len(s.pages); i++ {
		g := s.pages[i].granule
		if g < 0 {
			continue
		}
		if g > target-int64(s.codec.preroll()) {
			break
		}
		start, base = i+1, g
	}

	s.page, s.pkt = start, 0
	if start == s.dataPage {
		s.pkt = s.dataPkt
	}
	s.pcmPos, s.pcmLen = 0, 0
	s.skip = int(target - base)
	s.pos = p
	s.err = nil
	return s.codec.reset()
}
