package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownTier is returned when a quality tier is outside the fixed set.
var ErrUnknownTier = errors.New("unknown quality tier")

// QualityTier identifies one of the fixed media-link resolutions. Its value
// is the position of the link in the API's download array.
type QualityTier string

const (
	Tier12kbps  QualityTier = "0"
	Tier48kbps  QualityTier = "1"
	Tier96kbps  QualityTier = "2"
	Tier160kbps QualityTier = "3"
	Tier320kbps QualityTier = "4"

	DefaultTier = Tier160kbps
)

// Tiers lists every tier from lowest to highest bitrate.
var Tiers = []QualityTier{Tier12kbps, Tier48kbps, Tier96kbps, Tier160kbps, Tier320kbps}

// ParseTier validates s as a quality tier.
func ParseTier(s string) (QualityTier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Bitrate returns the nominal bitrate in kbps, or 0 for an unknown tier.
func (t QualityTier) Bitrate() int {
	switch t {
	case Tier12kbps:
		return 12
	case Tier48kbps:
		return 48
	case Tier96kbps:
		return 96
	case Tier160kbps:
		return 160
	case Tier320kbps:
		return 320
	default:
		return 0
	}
}

// String returns a label such as "160kbps".
func (t QualityTier) String() string {
	if b := t.Bitrate(); b > 0 {
		return fmt.Sprintf("%dkbps", b)
	}
	return "unknown"
}

// tierAt returns the tier key of position i in the API's download array.
func tierAt(i int) QualityTier {
	return QualityTier(strconv.Itoa(i))
}
