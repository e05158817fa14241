package vm

// CodeStream wraps a contract's runtime bytecode with a program counter and
// a precomputed jump-destination bitmap, so PUSH immediates are never
// mistaken for JUMPDEST markers during validation.
type CodeStream struct {
	code     []byte
	pc       uint64
	jumpdest bitvec
}

// NewCodeStream analyzes code once and returns a ready-to-run CodeStream.
func NewCodeStream(code []byte) *CodeStream {
	return &CodeStream{
		code:     code,
		jumpdest: codeBitmap(code),
	}
}

// Len returns the length of the code in bytes.
func (c *CodeStream) Len() int { return len(c.code) }

// PC returns the current program counter.
func (c *CodeStream) PC() uint64 { return c.pc }

// SetPC sets the program counter, used by JUMP/JUMPI after validating the
// destination.
func (c *CodeStream) SetPC(pc uint64) { c.pc = pc }

// Next returns the opcode at the current PC (0 for STOP/padding past the end
// of code, matching the EVM convention that execution past the last byte is
// an implicit STOP) and advances the PC by one.
func (c *CodeStream) Next() OpCode {
	op := c.opAt(c.pc)
	c.pc++
	return op
}

func (c *CodeStream) opAt(pc uint64) OpCode {
	if pc >= uint64(len(c.code)) {
		return STOP
	}
	return OpCode(c.code[pc])
}

// GetImmediate returns up to n bytes starting at pc, zero-padded if the
// requested range runs past the end of code. Used for PUSH operands.
func (c *CodeStream) GetImmediate(pc uint64, n int) []byte {
	out := make([]byte, n)
	end := pc + uint64(n)
	if pc >= uint64(len(c.code)) {
		return out
	}
	if end > uint64(len(c.code)) {
		end = uint64(len(c.code))
	}
	copy(out, c.code[pc:end])
	return out
}

// ValidJumpdest reports whether dest is a JUMPDEST opcode not embedded in
// PUSH data.
func (c *CodeStream) ValidJumpdest(dest uint64) bool {
	if dest >= uint64(len(c.code)) {
		return false
	}
	if OpCode(c.code[dest]) != JUMPDEST {
		return false
	}
	return c.jumpdest.codeSegment(dest)
}

// Bytes returns the raw code.
func (c *CodeStream) Bytes() []byte { return c.code }

// bitvec is a bitmap with one bit per code byte: set means "this byte is a
// genuine instruction opcode, not PUSH data".
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 0x80 >> (pos % 8)
}

func (bits bitvec) codeSegment(pos uint64) bool {
	return bits[pos/8]&(0x80>>(pos%8)) != 0
}

// codeBitmap marks every byte in code that is a real instruction (as
// opposed to a PUSH1..PUSH32 immediate), by walking the stream once and
// skipping immediates of PUSH opcodes.
func codeBitmap(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		bits.set(pc)
		if op.IsPush() {
			pc += uint64(op.PushSize()) + 1
		} else {
			pc++
		}
	}
	return bits
}
