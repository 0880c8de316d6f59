package mips

import (
	"testing"

	"dwislpy/common"
	"dwislpy/symt"
)

func TestLayoutFrameSizeIsEightByteAligned(t *testing.T) {
	for numFormals := 0; numFormals <= 3; numFormals++ {
		for numLocals := 0; numLocals <= 5; numLocals++ {
			global := symt.NewGlobal()
			st := symt.NewScope(global)
			for i := 0; i < numFormals; i++ {
				st.AddFormal(name(i, "f"), common.IntTy)
			}
			for i := 0; i < numLocals; i++ {
				st.AddLocal(name(i, "l"), common.IntTy)
			}

			Layout(st)

			if st.FrameSize()%8 != 0 {
				t.Errorf("formals=%d locals=%d: frame size %d not 8-byte aligned", numFormals, numLocals, st.FrameSize())
			}
			minSize := 4 * (numLocals + numCArgs + 2)
			if st.FrameSize() < minSize {
				t.Errorf("formals=%d locals=%d: frame size %d smaller than minimum %d", numFormals, numLocals, st.FrameSize(), minSize)
			}
		}
	}
}

func TestLayoutFormalsAndLocalsDoNotOverlap(t *testing.T) {
	global := symt.NewGlobal()
	st := symt.NewScope(global)
	st.AddFormal("a", common.IntTy)
	st.AddFormal("b", common.IntTy)
	st.AddLocal("x", common.IntTy)
	st.AddLocal("y", common.IntTy)

	Layout(st)

	seen := map[int]string{}
	for _, n := range []string{"a", "b", "x", "y", returnAddressSlot, framePointerSlot} {
		off := st.FrameOffset(n)
		if prev, ok := seen[off]; ok {
			t.Fatalf("offset %d assigned to both %q and %q", off, prev, n)
		}
		seen[off] = n
	}

	if st.FrameOffset("a") != 0 || st.FrameOffset("b") != 4 {
		t.Errorf("formals should be laid out at +0, +4 in introduction order, got a=%d b=%d",
			st.FrameOffset("a"), st.FrameOffset("b"))
	}
	if st.FrameOffset("x") != -4 || st.FrameOffset("y") != -8 {
		t.Errorf("locals should be laid out at -4, -8 in introduction order, got x=%d y=%d",
			st.FrameOffset("x"), st.FrameOffset("y"))
	}
}

func name(i int, prefix string) string {
	return prefix + string(rune('0'+i))
}
