package ingest

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"unicode/utf16"

	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
	"github.com/richardlehane/mscfb"
)

// Legacy workbook record ids. Only the cell and structure records a
// data export actually produces are decoded; everything else is
// skipped by length.
const (
	recBOF        = 0x0809
	recEOF        = 0x000A
	recBoundSheet = 0x0085
	recSST        = 0x00FC
	recLabelSST   = 0x00FD
	recLabel      = 0x0204
	recNumber     = 0x0203
	recRK         = 0x027E
	recMulRK      = 0x00BD
	recBoolErr    = 0x0205
	recFormula    = 0x0006
)

// LoadXLS reads every sheet of a legacy .xls workbook out of its
// compound-file "Workbook" stream.
func LoadXLS(path string) (*tabular.SheetMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: opening %s", path)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading compound file %s", path)
	}
	var stream []byte
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != "Workbook" && entry.Name != "Book" {
			continue
		}
		stream, err = io.ReadAll(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: reading workbook stream of %s", path)
		}
		break
	}
	if stream == nil {
		return nil, errors.Errorf("ingest: %s has no workbook stream", path)
	}
	return parseWorkbook(stream, path)
}

type biffSheet struct {
	name   string
	offset int
}

func parseWorkbook(stream []byte, path string) (*tabular.SheetMap, error) {
	var (
		bounds []biffSheet
		sst    []string
	)
	biffRecords(stream, 0)(func(r biffRecord) bool {
		switch r.id {
		case recBoundSheet:
			if s, ok := parseBoundSheet(r.data); ok {
				bounds = append(bounds, s)
			}
		case recSST:
			sst = parseSST(r.data)
		}
		// The first EOF closes the workbook globals substream.
		return r.id != recEOF
	})
	if len(bounds) == 0 {
		return nil, errors.Errorf("ingest: %s declares no sheets", path)
	}

	sheets := tabular.NewSheetMap()
	for _, b := range bounds {
		if b.offset < 0 || b.offset >= len(stream) {
			continue
		}
		if t := tableFromGrid(parseSheet(stream, b.offset, sst)); t != nil {
			sheets.Set(b.name, t)
		}
	}
	return sheets, nil
}

type biffRecord struct {
	id   int
	data []byte
}

// biffRecords iterates the record stream from off until EOF or a
// truncated record.
func biffRecords(stream []byte, off int) func(func(biffRecord) bool) {
	return func(yield func(biffRecord) bool) {
		for off+4 <= len(stream) {
			id := int(binary.LittleEndian.Uint16(stream[off:]))
			size := int(binary.LittleEndian.Uint16(stream[off+2:]))
			off += 4
			if off+size > len(stream) {
				return
			}
			if !yield(biffRecord{id: id, data: stream[off : off+size]}) {
				return
			}
			off += size
		}
	}
}

func parseBoundSheet(data []byte) (biffSheet, bool) {
	if len(data) < 8 {
		return biffSheet{}, false
	}
	offset := int(binary.LittleEndian.Uint32(data))
	name, _ := readShortUnicode(data[6:])
	if name == "" {
		return biffSheet{}, false
	}
	return biffSheet{name: name, offset: offset}, true
}

// parseSST decodes the shared string table. Strings split across
// CONTINUE records are cut off at the record boundary; exported data
// tables stay far below that size.
func parseSST(data []byte) []string {
	if len(data) < 8 {
		return nil
	}
	unique := int(binary.LittleEndian.Uint32(data[4:]))
	var out []string
	off := 8
	for i := 0; i < unique && off < len(data); i++ {
		s, n := readUnicodeString(data[off:])
		if n == 0 {
			break
		}
		out = append(out, s)
		off += n
	}
	return out
}

// parseSheet scans one sheet substream and returns its cell grid.
func parseSheet(stream []byte, offset int, sst []string) [][]tabular.Value {
	grid := make(map[int]map[int]tabular.Value)
	maxRow, maxCol := -1, -1
	put := func(row, col int, v tabular.Value) {
		if grid[row] == nil {
			grid[row] = make(map[int]tabular.Value)
		}
		grid[row][col] = v
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}

	started := false
	biffRecords(stream, offset)(func(r biffRecord) bool {
		switch r.id {
		case recBOF:
			if started {
				return false
			}
			started = true
		case recEOF:
			return false
		case recLabelSST:
			if len(r.data) >= 10 {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				isst := int(binary.LittleEndian.Uint32(r.data[6:]))
				if isst >= 0 && isst < len(sst) {
					put(row, col, sst[isst])
				}
			}
		case recLabel:
			if len(r.data) >= 6 {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				s, _ := readUnicodeString(r.data[6:])
				put(row, col, s)
			}
		case recNumber:
			if len(r.data) >= 14 {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				put(row, col, math.Float64frombits(binary.LittleEndian.Uint64(r.data[6:])))
			}
		case recRK:
			if len(r.data) >= 10 {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				put(row, col, decodeRK(binary.LittleEndian.Uint32(r.data[6:])))
			}
		case recMulRK:
			if len(r.data) >= 12 {
				row := int(binary.LittleEndian.Uint16(r.data))
				first := int(binary.LittleEndian.Uint16(r.data[2:]))
				n := (len(r.data) - 6) / 6
				for i := 0; i < n; i++ {
					rk := binary.LittleEndian.Uint32(r.data[4+i*6+2:])
					put(row, first+i, decodeRK(rk))
				}
			}
		case recBoolErr:
			if len(r.data) >= 8 && r.data[7] == 0 {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				put(row, col, r.data[6] != 0)
			}
		case recFormula:
			// Only numeric cached results are kept; string results
			// need the trailing STRING record and are rare in exports.
			if len(r.data) >= 14 && binary.LittleEndian.Uint16(r.data[12:]) != 0xFFFF {
				row := int(binary.LittleEndian.Uint16(r.data))
				col := int(binary.LittleEndian.Uint16(r.data[2:]))
				put(row, col, math.Float64frombits(binary.LittleEndian.Uint64(r.data[6:])))
			}
		}
		return true
	})
	return gridSlice(grid, maxRow, maxCol)
}

func gridSlice(grid map[int]map[int]tabular.Value, maxRow, maxCol int) [][]tabular.Value {
	if maxRow < 0 {
		return nil
	}
	out := make([][]tabular.Value, maxRow+1)
	for r := 0; r <= maxRow; r++ {
		row := make([]tabular.Value, maxCol+1)
		for c := 0; c <= maxCol; c++ {
			v, ok := grid[r][c]
			if !ok {
				v = ""
			}
			row[c] = v
		}
		out[r] = row
	}
	return out
}

// decodeRK expands the packed 30-bit RK number encoding.
func decodeRK(rk uint32) float64 {
	var f float64
	if rk&0x2 != 0 {
		f = float64(int32(rk) >> 2)
	} else {
		f = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x1 != 0 {
		f /= 100
	}
	return f
}

// readShortUnicode reads a string with a one-byte length, as used by
// sheet names.
func readShortUnicode(data []byte) (string, int) {
	if len(data) < 2 {
		return "", 0
	}
	cch := int(data[0])
	return decodeBiffChars(data[2:], cch, data[1]&0x1 != 0)
}

// readUnicodeString reads a string with a two-byte length and optional
// rich-text and phonetic blocks, which are skipped.
func readUnicodeString(data []byte) (string, int) {
	if len(data) < 3 {
		return "", 0
	}
	cch := int(binary.LittleEndian.Uint16(data))
	flags := data[2]
	off := 3
	runs, ext := 0, 0
	if flags&0x8 != 0 {
		if len(data) < off+2 {
			return "", 0
		}
		runs = int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
	}
	if flags&0x4 != 0 {
		if len(data) < off+4 {
			return "", 0
		}
		ext = int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
	}
	s, n := decodeBiffChars(data[off:], cch, flags&0x1 != 0)
	if n == 0 && cch > 0 {
		return "", 0
	}
	return s, off + n + runs*4 + ext
}

func decodeBiffChars(data []byte, cch int, wide bool) (string, int) {
	if !wide {
		if cch > len(data) {
			cch = len(data)
		}
		runes := make([]rune, cch)
		for i := 0; i < cch; i++ {
			runes[i] = rune(data[i])
		}
		return string(runes), cch
	}
	n := cch * 2
	if n > len(data) {
		n = len(data) - len(data)%2
	}
	u16 := make([]uint16, 0, n/2)
	for i := 0; i+1 < n; i += 2 {
		u16 = append(u16, binary.LittleEndian.Uint16(data[i:]))
	}
	return string(utf16.Decode(u16)), n
}
