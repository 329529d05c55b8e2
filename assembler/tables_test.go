package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegTable(t *testing.T) {
	segs := NewSegTable()
	segs.Add("Data")
	segs.Add("code")
	segs.Add("DATA")

	require.True(t, segs.Exists("data"))
	require.False(t, segs.Exists("stack"))
	require.Len(t, segs.All(), 2)

	segs.SetSize("data", 12)
	require.Equal(t, 12, segs.Get("DaTa").Size)
	require.Equal(t, "Data", segs.Get("data").Name)
	require.Nil(t, segs.Get("stack"))
	require.Equal(t, []SegInfo{{Name: "Data", Size: 12}, {Name: "code"}}, segs.All())
}

func TestIdTable(t *testing.T) {
	ids := NewIdTable()
	require.True(t, ids.Add(IdInfo{Name: "Var1", Segment: "data", Offset: 0, Type: IdDB, Line: 2}))
	require.True(t, ids.Add(IdInfo{Name: "loop", Segment: "code", Offset: 4, Type: IdLabel, Line: 9}))

	t.Run("duplicate leaves the original", func(t *testing.T) {
		require.False(t, ids.Add(IdInfo{Name: "VAR1", Segment: "code", Offset: 7, Type: IdDW, Line: 10}))
		info := ids.Get("var1")
		require.NotNil(t, info)
		require.Equal(t, IdInfo{Name: "Var1", Segment: "data", Offset: 0, Type: IdDB, Line: 2}, *info)
	})
	t.Run("get returns a copy", func(t *testing.T) {
		info := ids.Get("loop")
		info.Offset = 99
		require.Equal(t, 4, ids.Get("loop").Offset)
	})
	t.Run("order", func(t *testing.T) {
		all := ids.All()
		require.Len(t, all, 2)
		require.Equal(t, "Var1", all[0].Name)
		require.Equal(t, "loop", all[1].Name)
	})
}

func TestIdType(t *testing.T) {
	for directive, expected := range map[string]IdType{"db": IdDB, "DW": IdDW, "Dd": IdDD} {
		idType, ok := ParseIdType(directive)
		require.True(t, ok)
		require.Equal(t, expected, idType)
	}
	_, ok := ParseIdType("dq")
	require.False(t, ok)

	require.Equal(t, 0, IdLabel.Size())
	require.Equal(t, 4, IdDD.Size())
	require.Equal(t, "DW", IdDW.String())
}

func TestAssumeTable(t *testing.T) {
	assumes := NewAssumeTable()
	for _, name := range assumes {
		require.Equal(t, NoSegment, name)
	}

	assumes.Assume(Lex("cs:code, ds:data, es:extra"))
	require.Equal(t, "CODE", assumes[CS])
	require.Equal(t, "DATA", assumes[DS])
	require.Equal(t, "EXTRA", assumes[ES])
	require.Equal(t, NoSegment, assumes[SS])

	seg, ok := assumes.Holding("Data")
	require.True(t, ok)
	require.Equal(t, DS, seg)

	_, ok = assumes.Holding("stack")
	require.False(t, ok)

	assumes.Assume(Lex("ds:extra"))
	seg, ok = assumes.Holding("extra")
	require.True(t, ok)
	require.Equal(t, ES, seg)
}

func TestRegisters(t *testing.T) {
	reg, ok := LookupRegister("esi")
	require.True(t, ok)
	require.Equal(t, ESI, reg)
	require.Equal(t, 6, reg.Num())
	require.Equal(t, 4, reg.Size())
	require.True(t, reg.Is32())

	require.Equal(t, 1, BH.Size())
	require.Equal(t, 7, BH.Num())
	require.Equal(t, 2, SP.Size())

	_, ok = LookupRegister("ip")
	require.False(t, ok)

	seg, ok := LookupSegRegister("Gs")
	require.True(t, ok)
	require.Equal(t, byte(0x65), seg.OverridePrefix())
	require.Equal(t, byte(0x3E), DS.OverridePrefix())
}
