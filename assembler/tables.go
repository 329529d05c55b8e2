package assembler

import "strings"

// NoSegment is the name of the current segment outside of any SEGMENT/ENDS pair and the
// initial contents of every assume slot.
const NoSegment = "NOTHING"

func tableKey(name string) string {
	return strings.ToUpper(name)
}

type SegInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// SegTable holds segments in declaration order. Names compare case-insensitively.
type SegTable struct {
	items []*SegInfo
	index map[string]int
}

func NewSegTable() *SegTable {
	return &SegTable{index: map[string]int{}}
}

func (t *SegTable) Exists(name string) bool {
	_, ok := t.index[tableKey(name)]
	return ok
}

// Add inserts a new empty segment; adding an existing name does nothing.
func (t *SegTable) Add(name string) {
	if t.Exists(name) {
		return
	}
	t.index[tableKey(name)] = len(t.items)
	t.items = append(t.items, &SegInfo{Name: name})
}

func (t *SegTable) Get(name string) *SegInfo {
	i, ok := t.index[tableKey(name)]
	if !ok {
		return nil
	}
	return t.items[i]
}

func (t *SegTable) SetSize(name string, size int) {
	if seg := t.Get(name); seg != nil {
		seg.Size = size
	}
}

// All returns a copy of the segments in declaration order.
func (t *SegTable) All() []SegInfo {
	out := make([]SegInfo, len(t.items))
	for i, seg := range t.items {
		out[i] = *seg
	}
	return out
}

type IdType int

const (
	IdLabel IdType = iota
	IdDB
	IdDW
	IdDD
)

var idTypeNames = [...]string{"LABEL", "DB", "DW", "DD"}
var idTypeSizes = [...]int{0, 1, 2, 4}

func (t IdType) String() string {
	return idTypeNames[t]
}

// Size is the number of bytes a data identifier occupies; labels have size 0.
func (t IdType) Size() int {
	return idTypeSizes[t]
}

// ParseIdType converts a data directive (DB, DW, DD) to its identifier type.
func ParseIdType(directive string) (IdType, bool) {
	switch strings.ToUpper(directive) {
	case "DB":
		return IdDB, true
	case "DW":
		return IdDW, true
	case "DD":
		return IdDD, true
	}
	return IdLabel, false
}

type IdInfo struct {
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Offset  int    `json:"offset"`
	Type    IdType `json:"type"`
	Line    int    `json:"line"` // 1-based line of the declaration
}

// IdTable holds labels and data identifiers in declaration order. Names compare
// case-insensitively and are unique across the whole program.
type IdTable struct {
	items []IdInfo
	index map[string]int
}

func NewIdTable() *IdTable {
	return &IdTable{index: map[string]int{}}
}

func (t *IdTable) Exists(name string) bool {
	_, ok := t.index[tableKey(name)]
	return ok
}

// Add declares info. It returns false, leaving the existing entry untouched, when the name
// is already declared.
func (t *IdTable) Add(info IdInfo) bool {
	if t.Exists(info.Name) {
		return false
	}
	t.index[tableKey(info.Name)] = len(t.items)
	t.items = append(t.items, info)
	return true
}

func (t *IdTable) Get(name string) *IdInfo {
	i, ok := t.index[tableKey(name)]
	if !ok {
		return nil
	}
	info := t.items[i]
	return &info
}

// All returns a copy of the identifiers in declaration order.
func (t *IdTable) All() []IdInfo {
	return append([]IdInfo(nil), t.items...)
}

// AssumeTable records which segment each segment register is assumed to address.
type AssumeTable [len(segRegisterNames)]string

func NewAssumeTable() AssumeTable {
	var a AssumeTable
	for i := range a {
		a[i] = NoSegment
	}
	return a
}

// Assume applies the "<seg-reg> : <name>" pairs of an ASSUME line. Pairs are separated by
// commas; segment names are stored upper case.
func (a *AssumeTable) Assume(lexemes []Lexeme) {
	index := ES
	segName := NoSegment
	for _, l := range lexemes {
		switch {
		case l.Type == LexemeRegisterSegment:
			index, _ = LookupSegRegister(l.Value)
		case l.Type == LexemeUserIdentifier:
			segName = strings.ToUpper(l.Value)
		case l.Value == ",":
			a[index] = segName
		}
	}
	a[index] = segName
}

// Holding returns the first segment register assumed to address segment.
func (a *AssumeTable) Holding(segment string) (SegRegister, bool) {
	for i, name := range a {
		if strings.EqualFold(name, segment) {
			return SegRegister(i), true
		}
	}
	return 0, false
}
