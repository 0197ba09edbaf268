package transfer

import "io"

// progressReader reports the read percentage through a ProgressFunc. It
// caps at 99: the final 100 is written by the caller once the backend has
// acknowledged the whole object.
type progressReader struct {
	r          io.Reader
	size       int64
	read       int64
	last       int
	uploadID   string
	onProgress ProgressFunc
}

// NewProgressReader wraps r so that every read advances the reported
// percentage. size must be the total number of bytes that will be read;
// onProgress may be nil.
func NewProgressReader(r io.Reader, size int64, uploadID string, onProgress ProgressFunc) io.Reader {
	return &progressReader{r: r, size: size, last: -1, uploadID: uploadID, onProgress: onProgress}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if p.onProgress != nil && p.size > 0 {
		pct := int(p.read * 100 / p.size)
		if pct > 99 {
			pct = 99
		}
		if pct != p.last {
			p.last = pct
			p.onProgress(p.uploadID, pct)
		}
	}
	return n, err
}
