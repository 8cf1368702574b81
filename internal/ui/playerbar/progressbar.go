package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/saverino/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// ProgressBar renders a width-cell bar filled by position/duration. An
// unknown duration renders an empty bar.
func ProgressBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if duration > 0 {
		ratio := min(max(float64(position)/float64(duration), 0), 1)
		filled = int(float64(width) * ratio)
	}
	t := styles.T()
	return t.S().Playing.Render(strings.Repeat(filledBlock, filled)) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, width-filled))
}
