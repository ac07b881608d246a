package storage

import "encoding/binary"

// SlottedPage layers a multi-row, variable-length record layout over one
// Page.
//
// Header (4 bytes): next_free (uint16 BE) then row_count (uint16 BE).
// Body: a sequence of records, each prefixed by a 2-byte signed
// big-endian length. A positive length is a live row of that many body
// bytes; a negative length is a tombstone whose absolute value is the
// original body length, so scans can skip over it without losing their
// place. next_free is the offset of the first unwritten byte.
type SlottedPage struct {
	page     *Page
	nextFree int
	offsets  []int // byte offset of each live slot's length prefix, insertion order
}

const slottedHeaderSize = 4

// WrapSlottedPage opens an existing page buffer as a SlottedPage, rebuilding
// the live-slot offset list by walking the body from the header to
// next_free and skipping tombstones.
func WrapSlottedPage(page *Page) (*SlottedPage, error) {
	hdr, err := page.Read(0, slottedHeaderSize)
	if err != nil {
		return nil, err
	}
	nextFree := int(binary.BigEndian.Uint16(hdr[0:2]))
	if nextFree == 0 {
		nextFree = slottedHeaderSize
	}
	sp := &SlottedPage{page: page, nextFree: nextFree}
	idx := slottedHeaderSize
	for idx < sp.nextFree {
		lenBytes, err := page.Read(idx, 2)
		if err != nil {
			return nil, err
		}
		signedLen := int(int16(binary.BigEndian.Uint16(lenBytes)))
		bodyLen := signedLen
		if bodyLen < 0 {
			bodyLen = -bodyLen
		}
		if signedLen >= 0 {
			sp.offsets = append(sp.offsets, idx)
		}
		idx += 2 + bodyLen
	}
	return sp, nil
}

// CanFit reports whether a row with the given body can be added without
// growing the page past its fixed size.
func (sp *SlottedPage) CanFit(body []byte) bool {
	return sp.nextFree+2+len(body) <= sp.page.Size()
}

func (sp *SlottedPage) writeHeader() error {
	var hdr [slottedHeaderSize]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(sp.nextFree))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(len(sp.offsets)))
	return sp.page.Write(0, hdr[:])
}

// AddRow appends body as a new live row. Returns false without mutating
// the page if it does not fit.
func (sp *SlottedPage) AddRow(body []byte) (bool, error) {
	if !sp.CanFit(body) {
		return false, nil
	}
	offset := sp.nextFree
	var lenPrefix [2]byte
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(int16(len(body))))
	if err := sp.page.Write(offset, lenPrefix[:]); err != nil {
		return false, err
	}
	if err := sp.page.Write(offset+2, body); err != nil {
		return false, err
	}
	sp.offsets = append(sp.offsets, offset)
	sp.nextFree = offset + 2 + len(body)
	if err := sp.writeHeader(); err != nil {
		return false, err
	}
	return true, nil
}

// GetRows returns the live record bodies in insertion order, skipping
// tombstones.
func (sp *SlottedPage) GetRows() ([][]byte, error) {
	rows := make([][]byte, 0, len(sp.offsets))
	for _, off := range sp.offsets {
		lenBytes, err := sp.page.Read(off, 2)
		if err != nil {
			return nil, err
		}
		bodyLen := int(int16(binary.BigEndian.Uint16(lenBytes)))
		if bodyLen < 0 {
			continue // tombstoned since WrapSlottedPage last rebuilt offsets
		}
		body, err := sp.page.Read(off+2, bodyLen)
		if err != nil {
			return nil, err
		}
		rows = append(rows, body)
	}
	return rows, nil
}

// UpdateRow replaces the body of the slotIndex-th live row in place.
// Succeeds only when newBody is the same length as the existing body;
// returns false on a length mismatch or an out-of-range index.
func (sp *SlottedPage) UpdateRow(slotIndex int, newBody []byte) (bool, error) {
	if slotIndex < 0 || slotIndex >= len(sp.offsets) {
		return false, nil
	}
	off := sp.offsets[slotIndex]
	lenBytes, err := sp.page.Read(off, 2)
	if err != nil {
		return false, err
	}
	oldLen := int(int16(binary.BigEndian.Uint16(lenBytes)))
	if oldLen != len(newBody) {
		return false, nil
	}
	if err := sp.page.Write(off+2, newBody); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteRow rewrites the slotIndex-th live row's length prefix as a
// tombstone (negated length). The record's body bytes are left in place,
// unreclaimed.
func (sp *SlottedPage) DeleteRow(slotIndex int) error {
	if slotIndex < 0 || slotIndex >= len(sp.offsets) {
		return newPageError("slot %d out of range [0:%d)", slotIndex, len(sp.offsets))
	}
	off := sp.offsets[slotIndex]
	lenBytes, err := sp.page.Read(off, 2)
	if err != nil {
		return err
	}
	bodyLen := int16(binary.BigEndian.Uint16(lenBytes))
	if bodyLen < 0 {
		bodyLen = -bodyLen // already a tombstone; rewriting is harmless
	}
	var tomb [2]byte
	binary.BigEndian.PutUint16(tomb[:], uint16(-bodyLen))
	if err := sp.page.Write(off, tomb[:]); err != nil {
		return err
	}
	sp.offsets = append(sp.offsets[:slotIndex], sp.offsets[slotIndex+1:]...)
	return sp.writeHeader()
}

// RowCount returns the number of live (non-tombstoned) rows as of the
// last WrapSlottedPage/AddRow/DeleteRow call.
func (sp *SlottedPage) RowCount() int { return len(sp.offsets) }
