package storage

import "github.com/valyala/bytebufferpool"

// Pager is a process-local buffer cache mapping page numbers to in-memory
// Pages. There is no eviction policy — the cache grows monotonically — and
// no concurrency control; callers are expected to serialize access (see
// the engine façade).
type Pager struct {
	fm       *FileManager
	pageSize int
	cache    map[int]*Page
	flushBuf bytebufferpool.Pool
}

// NewPager constructs a Pager backed by fm, using pageSize for every page.
func NewPager(fm *FileManager, pageSize int) *Pager {
	return &Pager{
		fm:       fm,
		pageSize: pageSize,
		cache:    make(map[int]*Page),
	}
}

// PageSize returns the fixed page size this pager was constructed with.
func (pg *Pager) PageSize() int { return pg.pageSize }

// GetPage returns the cached page for pageNum, loading it from disk on a
// cache miss.
func (pg *Pager) GetPage(pageNum int) (*Page, error) {
	if p, ok := pg.cache[pageNum]; ok {
		return p, nil
	}
	raw, err := pg.fm.ReadPage(pageNum, pg.pageSize)
	if err != nil {
		return nil, err
	}
	p := NewPage(pg.pageSize)
	copy(p.Bytes(), raw)
	pg.cache[pageNum] = p
	return p, nil
}

// FlushPage writes a cached page's bytes through to disk. It is a no-op
// for a page that was never fetched into the cache.
func (pg *Pager) FlushPage(pageNum int) error {
	p, ok := pg.cache[pageNum]
	if !ok {
		return nil
	}
	buf := pg.flushBuf.Get()
	defer pg.flushBuf.Put(buf)
	buf.Reset()
	buf.Write(p.Bytes())
	return pg.fm.WritePage(pageNum, buf.Bytes())
}

// IterPages yields cached/loaded pages starting at start, stopping before
// the first all-zero page. Used only by legacy scan paths that predate
// the catalog's page-range bookkeeping; scan_table uses the catalog's
// resolved range instead (see Catalog.PageRange).
func (pg *Pager) IterPages(start int) ([]*Page, error) {
	var out []*Page
	for n := start; ; n++ {
		p, err := pg.GetPage(n)
		if err != nil {
			return nil, err
		}
		if p.IsZero() {
			break
		}
		out = append(out, p)
	}
	return out, nil
}
