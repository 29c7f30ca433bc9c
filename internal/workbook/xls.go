package workbook

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

var (
	// ErrLegacyXLS indicates an Excel 5/95 (BIFF5) or older workbook.
	ErrLegacyXLS = errors.New("xls workbooks older than Excel 97 are not supported")
	// ErrEncrypted indicates a password-protected workbook.
	ErrEncrypted = errors.New("workbook is password protected")

	errCorruptXLS = errors.New("corrupt xls workbook")
)

// BIFF8 record identifiers read by the loader.
const (
	recFormula    uint16 = 0x0006
	recEOF        uint16 = 0x000A
	recFilePass   uint16 = 0x002F
	recContinue   uint16 = 0x003C
	recBoundSheet uint16 = 0x0085
	recMulRK      uint16 = 0x00BD
	recSST        uint16 = 0x00FC
	recLabelSST   uint16 = 0x00FD
	recNumber     uint16 = 0x0203
	recLabel      uint16 = 0x0204
	recBoolErr    uint16 = 0x0205
	recString     uint16 = 0x0207
	recRK         uint16 = 0x027E
	recBOF        uint16 = 0x0809
)

const (
	biff8Version   = 0x0600
	sheetWorksheet = 0x00
	maxXLSColumns  = 256
)

// Cached error values of FORMULA and BOOLERR records.
var xlsErrorText = map[byte]string{
	0x00: "#NULL!",
	0x07: "#DIV/0!",
	0x0F: "#VALUE!",
	0x17: "#REF!",
	0x1D: "#NAME?",
	0x24: "#NUM!",
	0x2A: "#N/A",
	0x2B: "#GETTING_DATA",
}

type biffRecord struct {
	id   uint16
	data []byte
}

type xlsSheet struct {
	name   string
	offset int
}

func loadXLS(data []byte) (*Grid, error) {
	stream, err := workbookStream(data)
	if err != nil {
		return nil, err
	}
	sheets, sst, err := readGlobals(stream)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.name
	}
	idx, ok := SelectSheet(names)
	if !ok {
		return nil, ErrNoSheets
	}
	sheet := sheets[idx]

	rows, err := readSheet(stream, sheet.offset, sst)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet.name, err)
	}
	return &Grid{sheet: sheet.name, rows: rows}, nil
}

// workbookStream extracts the BIFF8 "Workbook" stream from the compound file.
func workbookStream(data []byte) ([]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening xls container: %w", err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if len(entry.Path) > 0 {
			continue
		}
		switch entry.Name {
		case "Workbook":
			stream, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("reading workbook stream: %w", err)
			}
			return stream, nil
		case "Book":
			return nil, ErrLegacyXLS
		}
	}
	return nil, fmt.Errorf("%w: compound file has no workbook stream", ErrUnsupportedFormat)
}

// readGlobals returns the worksheets in tab order and the shared string table.
func readGlobals(stream []byte) ([]xlsSheet, []string, error) {
	recs, version, err := substream(stream, 0)
	if err != nil {
		return nil, nil, err
	}
	if version != biff8Version {
		return nil, nil, ErrLegacyXLS
	}

	var (
		sheets []xlsSheet
		sst    []string
	)
	for i, rec := range recs {
		switch rec.id {
		case recFilePass:
			return nil, nil, ErrEncrypted
		case recBoundSheet:
			s, ok, err := parseBoundSheet(rec.data)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				sheets = append(sheets, s)
			}
		case recSST:
			sst, err = parseSST(rec.data, continuations(recs, i))
			if err != nil {
				return nil, nil, err
			}
		}
	}
	return sheets, sst, nil
}

func parseBoundSheet(data []byte) (xlsSheet, bool, error) {
	if len(data) < 8 {
		return xlsSheet{}, false, fmt.Errorf("%w: short BOUNDSHEET record", errCorruptXLS)
	}
	if data[5] != sheetWorksheet {
		return xlsSheet{}, false, nil
	}
	r := &continuedReader{segs: [][]byte{data[8:]}}
	name, err := r.chars(int(data[6]), data[7]&0x01 != 0)
	if err != nil {
		return xlsSheet{}, false, err
	}
	return xlsSheet{name: name, offset: int(binary.LittleEndian.Uint32(data))}, true, nil
}

// readSheet materializes the worksheet substream starting at offset.
// Rows with no cell records stay nil.
func readSheet(stream []byte, offset int, sst []string) ([][]Cell, error) {
	if offset <= 0 || offset >= len(stream) {
		return nil, fmt.Errorf("%w: sheet offset %d out of range", errCorruptXLS, offset)
	}
	recs, _, err := substream(stream, offset)
	if err != nil {
		return nil, err
	}

	var b gridBuilder
	// A string FORMULA result lives in the STRING record that follows it.
	pending := -1
	var pendingRow, pendingCol int

	for i, rec := range recs {
		d := rec.data
		switch rec.id {
		case recNumber:
			if len(d) < 14 {
				return nil, shortRecord(rec.id)
			}
			b.set(u16(d), u16(d[2:]), numberCell(math.Float64frombits(binary.LittleEndian.Uint64(d[6:]))))
		case recRK:
			if len(d) < 10 {
				return nil, shortRecord(rec.id)
			}
			b.set(u16(d), u16(d[2:]), Number(rkValue(binary.LittleEndian.Uint32(d[6:]))))
		case recMulRK:
			if len(d) < 6 {
				return nil, shortRecord(rec.id)
			}
			r, first := u16(d), u16(d[2:])
			for k := 0; 4+6*k+6 <= len(d)-2; k++ {
				b.set(r, first+k, Number(rkValue(binary.LittleEndian.Uint32(d[4+6*k+2:]))))
			}
		case recLabelSST:
			if len(d) < 10 {
				return nil, shortRecord(rec.id)
			}
			isst := int(binary.LittleEndian.Uint32(d[6:]))
			if isst >= len(sst) {
				return nil, fmt.Errorf("%w: shared string %d out of range", errCorruptXLS, isst)
			}
			b.set(u16(d), u16(d[2:]), Text(sst[isst]))
		case recLabel:
			if len(d) < 9 {
				return nil, shortRecord(rec.id)
			}
			s, err := unicodeString(d[6:], continuations(recs, i))
			if err != nil {
				return nil, err
			}
			b.set(u16(d), u16(d[2:]), Text(s))
		case recBoolErr:
			if len(d) < 8 {
				return nil, shortRecord(rec.id)
			}
			b.set(u16(d), u16(d[2:]), boolErrCell(d[6], d[7] != 0))
		case recFormula:
			if len(d) < 14 {
				return nil, shortRecord(rec.id)
			}
			r, c := u16(d), u16(d[2:])
			val := d[6:14]
			if val[6] != 0xFF || val[7] != 0xFF {
				b.set(r, c, numberCell(math.Float64frombits(binary.LittleEndian.Uint64(val))))
				continue
			}
			switch val[0] {
			case 0x00:
				pending, pendingRow, pendingCol = i, r, c
			case 0x01:
				b.set(r, c, boolErrCell(val[2], false))
			case 0x02:
				b.set(r, c, boolErrCell(val[2], true))
			}
		case recString:
			if pending < 0 {
				continue
			}
			s, err := unicodeString(d, continuations(recs, i))
			if err != nil {
				return nil, err
			}
			b.set(pendingRow, pendingCol, Text(s))
			pending = -1
		}
	}
	return b.rows, nil
}

// substream reads the records of the BOF/EOF block starting at pos and
// returns the top-level ones. Nested blocks such as embedded charts are
// skipped.
func substream(stream []byte, pos int) ([]biffRecord, uint16, error) {
	var (
		recs    []biffRecord
		version uint16
		depth   int
	)
	for {
		rec, next, err := readRecord(stream, pos)
		if err != nil {
			return nil, 0, err
		}
		pos = next

		switch {
		case depth == 0 && rec.id != recBOF:
			return nil, 0, fmt.Errorf("%w: expected BOF, got record 0x%04X", errCorruptXLS, rec.id)
		case rec.id == recBOF:
			if depth == 0 {
				if len(rec.data) < 4 {
					return nil, 0, shortRecord(rec.id)
				}
				version = binary.LittleEndian.Uint16(rec.data)
			}
			depth++
		case rec.id == recEOF:
			depth--
			if depth == 0 {
				return recs, version, nil
			}
		case depth == 1:
			recs = append(recs, rec)
		}
	}
}

func readRecord(stream []byte, pos int) (biffRecord, int, error) {
	if pos < 0 || pos+4 > len(stream) {
		return biffRecord{}, 0, fmt.Errorf("%w: truncated record at %d", errCorruptXLS, pos)
	}
	id := binary.LittleEndian.Uint16(stream[pos:])
	end := pos + 4 + int(binary.LittleEndian.Uint16(stream[pos+2:]))
	if end > len(stream) {
		return biffRecord{}, 0, fmt.Errorf("%w: record 0x%04X overruns stream", errCorruptXLS, id)
	}
	return biffRecord{id: id, data: stream[pos+4 : end]}, end, nil
}

// continuations returns the bodies of the CONTINUE records following recs[i].
func continuations(recs []biffRecord, i int) [][]byte {
	var out [][]byte
	for j := i + 1; j < len(recs) && recs[j].id == recContinue; j++ {
		out = append(out, recs[j].data)
	}
	return out
}

func parseSST(data []byte, cont [][]byte) ([]string, error) {
	if len(data) < 8 {
		return nil, shortRecord(recSST)
	}
	unique := int(binary.LittleEndian.Uint32(data[4:]))
	r := &continuedReader{segs: append([][]byte{data[8:]}, cont...)}

	// Bound the allocation by what the record could hold.
	out := make([]string, 0, min(unique, r.remaining()/3))
	for i := 0; i < unique; i++ {
		s, err := r.richString()
		if err != nil {
			return nil, fmt.Errorf("shared string %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// unicodeString decodes an XLUnicodeString (LABEL, STRING).
func unicodeString(data []byte, cont [][]byte) (string, error) {
	r := &continuedReader{segs: append([][]byte{data}, cont...)}
	return r.richString()
}

// continuedReader reads a value split across a record and its CONTINUE
// records.
type continuedReader struct {
	segs [][]byte
	seg  int
	pos  int
}

func (r *continuedReader) remaining() int {
	n := 0
	for i := r.seg; i < len(r.segs); i++ {
		n += len(r.segs[i])
	}
	return n - r.pos
}

// atSegmentEnd moves to the next segment when the current one is exhausted
// and reports whether it did.
func (r *continuedReader) atSegmentEnd() (bool, error) {
	if r.pos < len(r.segs[r.seg]) {
		return false, nil
	}
	if r.seg+1 >= len(r.segs) {
		return false, fmt.Errorf("%w: string runs past its record", errCorruptXLS)
	}
	r.seg++
	r.pos = 0
	return true, nil
}

func (r *continuedReader) read(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		if _, err := r.atSegmentEnd(); err != nil {
			return nil, err
		}
		cur := r.segs[r.seg]
		k := min(n-len(out), len(cur)-r.pos)
		out = append(out, cur[r.pos:r.pos+k]...)
		r.pos += k
	}
	return out, nil
}

func (r *continuedReader) skip(n int) error {
	for n > 0 {
		if _, err := r.atSegmentEnd(); err != nil {
			return err
		}
		k := min(n, len(r.segs[r.seg])-r.pos)
		r.pos += k
		n -= k
	}
	return nil
}

// richString reads cch, option flags, optional run and extension sizes,
// the characters, then skips the formatting runs and extension block.
func (r *continuedReader) richString() (string, error) {
	hdr, err := r.read(3)
	if err != nil {
		return "", err
	}
	cch := int(binary.LittleEndian.Uint16(hdr))
	flags := hdr[2]

	var runs, ext int
	if flags&0x08 != 0 {
		b, err := r.read(2)
		if err != nil {
			return "", err
		}
		runs = int(binary.LittleEndian.Uint16(b))
	}
	if flags&0x04 != 0 {
		b, err := r.read(4)
		if err != nil {
			return "", err
		}
		ext = int(int32(binary.LittleEndian.Uint32(b)))
		if ext < 0 {
			return "", fmt.Errorf("%w: negative extension size", errCorruptXLS)
		}
	}

	s, err := r.chars(cch, flags&0x01 != 0)
	if err != nil {
		return "", err
	}
	if err := r.skip(4*runs + ext); err != nil {
		return "", err
	}
	return s, nil
}

// chars reads n characters. A CONTINUE boundary inside the characters
// restarts with its own option byte selecting the width of what follows.
func (r *continuedReader) chars(n int, wide bool) (string, error) {
	var sb strings.Builder
	for n > 0 {
		moved, err := r.atSegmentEnd()
		if err != nil {
			return "", err
		}
		if moved {
			if len(r.segs[r.seg]) == 0 {
				continue
			}
			wide = r.segs[r.seg][0]&0x01 != 0
			r.pos++
			continue
		}

		cur := r.segs[r.seg][r.pos:]
		width := 1
		if wide {
			width = 2
		}
		k := min(n, len(cur)/width)
		if k == 0 {
			return "", fmt.Errorf("%w: split character", errCorruptXLS)
		}
		if wide {
			units := make([]uint16, k)
			for j := range units {
				units[j] = binary.LittleEndian.Uint16(cur[2*j:])
			}
			sb.WriteString(string(utf16.Decode(units)))
		} else {
			// Compressed strings hold the low byte of each UTF-16 unit.
			for _, c := range cur[:k] {
				sb.WriteRune(rune(c))
			}
		}
		r.pos += k * width
		n -= k
	}
	return sb.String(), nil
}

// rkValue decodes an RK number: bit 0 scales by 1/100, bit 1 selects a
// 30-bit signed integer over the high 30 bits of an IEEE double.
func rkValue(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

func numberCell(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Empty()
	}
	return Number(v)
}

// boolErrCell types a cached boolean as 0/1 and an error code as its
// display text, the way xlsx raw values read.
func boolErrCell(v byte, isErr bool) Cell {
	if !isErr {
		if v != 0 {
			return Number(1)
		}
		return Number(0)
	}
	if s, ok := xlsErrorText[v]; ok {
		return Text(s)
	}
	return Text("#ERR!")
}

func shortRecord(id uint16) error {
	return fmt.Errorf("%w: short record 0x%04X", errCorruptXLS, id)
}

func u16(b []byte) int { return int(binary.LittleEndian.Uint16(b)) }

// gridBuilder grows rows on demand as cell records arrive in any order.
type gridBuilder struct {
	rows [][]Cell
}

func (b *gridBuilder) set(r, c int, cell Cell) {
	if cell.IsEmpty() || c >= maxXLSColumns {
		return
	}
	for len(b.rows) <= r {
		b.rows = append(b.rows, nil)
	}
	row := b.rows[r]
	for len(row) <= c {
		row = append(row, Empty())
	}
	row[c] = cell
	b.rows[r] = row
}
