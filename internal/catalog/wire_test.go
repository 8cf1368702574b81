package catalog

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestToTrack_TierIsDownloadIndex(t *testing.T) {
	var s songResult
	raw := `{"id":"a","downloadUrl":[
		{"quality":"12kbps","link":"u0"},
		{"quality":"48kbps","link":"u1"},
		{"quality":"96kbps","url":"u2"},
		{"quality":"160kbps","link":"u3"}
	]}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	track := s.toTrack()

	tests := []struct {
		tier QualityTier
		want string
	}{
		{Tier12kbps, "u0"},
		{Tier96kbps, "u2"},
		{DefaultTier, "u3"},
		{Tier160kbps, "u3"},
	}
	for _, tt := range tests {
		got, err := track.LinkFor(tt.tier)
		if err != nil {
			t.Fatalf("LinkFor(%q) error = %v", tt.tier, err)
		}
		if got != tt.want {
			t.Errorf("LinkFor(%q) = %q, want %q", tt.tier, got, tt.want)
		}
	}

	// The array stops before the 320kbps position.
	if _, err := track.LinkFor(Tier320kbps); !errors.Is(err, ErrMissingMediaLink) {
		t.Errorf("LinkFor(%q) error = %v, want ErrMissingMediaLink", Tier320kbps, err)
	}
}
