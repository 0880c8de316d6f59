// Package mips lowers IR into SPIM-compatible MIPS32 assembly text,
// grounded on spec section 4.5. Layout computes each definition's stack
// frame; EmitProgram walks its code, translating every pseudo-instruction.
package mips

import (
	"dwislpy/common"
	"dwislpy/symt"
)

const (
	returnAddressSlot = "saved_return_address"
	framePointerSlot  = "saved_frame_pointer"
	numCArgs          = 4
)

// Layout assigns frame offsets to every formal and local in st (in that
// order), appends the two saved-register slots, and records the resulting
// (8-byte-aligned) frame size on st.
func Layout(st *symt.SymT) {
	numLocals := st.NumLocals()
	frameSize := 4 * (numLocals + numCArgs + 2)
	if frameSize%8 != 0 {
		frameSize += 4
	}

	for i := 0; i < st.NumFormals(); i++ {
		info := st.GetFormal(i)
		st.SetFrameOffset(info.Name, i*4)
	}

	offset := -4
	for i := 0; i < numLocals; i++ {
		info := st.GetLocal(i)
		st.SetFrameOffset(info.Name, offset)
		offset -= 4
	}

	// Not really typed values -- IntTy is just a placeholder kind for a
	// slot that only ever holds a saved register.
	st.AddTemp(returnAddressSlot, common.IntTy)
	st.SetFrameOffset(returnAddressSlot, offset)
	offset -= 4

	st.AddTemp(framePointerSlot, common.IntTy)
	st.SetFrameOffset(framePointerSlot, offset)
	offset -= 4

	st.SetFrameSize(frameSize)
}
