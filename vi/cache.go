package vi

// ccvg is a color sample with 3-bit coverage in the low bits.
type ccvg struct {
	r, g, b, cvg uint8
}

// scanlineCache is the sliding three-tap scanline cache: two
// double-buffered rows of ccvg, indexed by source column, each guarded
// by a "highest column fetched" marker. Reading column c is only valid
// once marker >= c; every read site in pipeline_normal.go checks the
// marker before indexing and advances it on miss, so the marker is the
// single source of truth for "has this column been fetched".
type scanlineCache struct {
	cur, next             [cacheCap]ccvg
	curMarker, nextMarker int
}

// reset reseeds both markers to just below the first column this scanline
// will touch (one below the first pixel's prev tap, so that tap misses
// and fetches).
func (c *scanlineCache) reset(markerInit int) {
	c.curMarker = markerInit
	c.nextMarker = markerInit
}

// swap exchanges the current and next rows. Valid only when the next row's
// data is exactly the following scanline's current row (y_add == 0x400,
// i.e. one source pixel per output pixel) — preserve this condition
// exactly, since a looser swap corrupts subsequent rows.
func (c *scanlineCache) swap(markerInit int) {
	c.cur, c.next = c.next, c.cur
	c.curMarker = c.nextMarker
	c.nextMarker = markerInit
}

// divotCache mirrors scanlineCache's shape for the divot-filtered samples;
// kept as a distinct type (rather than reusing scanlineCache) because its
// markers advance on a different schedule (only ever two columns ahead of
// the AA cache's marker, never three).
type divotCache struct {
	cur, next             [cacheCap]ccvg
	curMarker, nextMarker int
}

func (d *divotCache) reset(markerInit int) {
	d.curMarker = markerInit
	d.nextMarker = markerInit
}

func (d *divotCache) swap(markerInit int) {
	d.cur, d.next = d.next, d.cur
	d.curMarker = d.nextMarker
	d.nextMarker = markerInit
}
