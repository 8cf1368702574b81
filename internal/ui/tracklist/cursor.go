package tracklist

// cursor keeps a selection and a scroll offset for a list whose length and
// viewport height are passed in, since both change under it.
type cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the selection
}

func (c *cursor) move(delta, n, height int) {
	c.jump(c.pos+delta, n, height)
}

func (c *cursor) jump(pos, n, height int) {
	if n == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(pos, n-1)
	c.ensureVisible(n, height)
}

func (c *cursor) ensureVisible(n, height int) {
	if height <= 0 || n == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(n-height, 0))
}

// visible returns the [start, end) window of rows on screen.
func (c *cursor) visible(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
