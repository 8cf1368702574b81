package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
)

type mediaKind int

const (
	kindUnknown mediaKind = iota
	kindMP3
	kindMP4
	kindOgg
	kindFLAC
)

// sniff identifies the container from the first bytes of a source, falling
// back to the response content type.
func sniff(head []byte, contentType string) mediaKind {
	switch {
	case len(head) >= 8 && string(head[4:8]) == "ftyp":
		return kindMP4
	case len(head) >= 4 && string(head[:4]) == "OggS":
		return kindOgg
	case len(head) >= 4 && string(head[:4]) == "fLaC":
		return kindFLAC
	case len(head) >= 3 && string(head[:3]) == "ID3":
		return kindMP3
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0 && (head[1]>>1)&0x03 != 0:
		// MPEG frame sync with a non-zero layer (layer 0 is ADTS AAC)
		return kindMP3
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "audio/mpeg"), strings.Contains(ct, "audio/mp3"):
		return kindMP3
	case strings.Contains(ct, "mp4"), strings.Contains(ct, "m4a"), strings.Contains(ct, "aac"):
		return kindMP4
	case strings.Contains(ct, "ogg"), strings.Contains(ct, "opus"):
		return kindOgg
	case strings.Contains(ct, "flac"):
		return kindFLAC
	}
	return kindUnknown
}

func decode(src *memSource, contentType string) (beep.StreamSeekCloser, beep.Format, error) {
	head := make([]byte, 12)
	n, _ := io.ReadFull(src, head)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}

	switch sniff(head[:n], contentType) {
	case kindMP3:
		return decodeMP3(src)
	case kindMP4:
		return decodeMP4(src)
	case kindOgg:
		return decodeOgg(src.data)
	case kindFLAC:
		return flac.Decode(src)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}
}

// stereoFrames converts interleaved int16 PCM to float stereo frames,
// duplicating mono.
func stereoFrames(pcm []int16, channels int) [][2]float64 {
	if channels >= 2 {
		frames := make([][2]float64, len(pcm)/channels)
		for i := range frames {
			frames[i][0] = float64(pcm[i*channels]) / 32768.0
			frames[i][1] = float64(pcm[i*channels+1]) / 32768.0
		}
		return frames
	}
	frames := make([][2]float64, len(pcm))
	for i, sample := range pcm {
		v := float64(sample) / 32768.0
		frames[i][0] = v
		frames[i][1] = v
	}
	return frames
}
