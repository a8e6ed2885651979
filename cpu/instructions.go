package cpu

// Each instruction function implements one mnemonic's semantic effect. It
// reads its operand via c.operandAddr/c.A according to mode, and returns
// the extra cycles (beyond the opcode's base Cycles) this particular
// execution incurred — nonzero only for taken branches.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html is the
// reference every mnemonic below follows; ADC/SBC run in binary mode
// only — the NES 6502 variant never consults the D flag arithmetically.

// --- loads/stores ---

func lda(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.A = v
	c.setZN(c.A)
	return 0, nil
}

func ldx(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.X = v
	c.setZN(c.X)
	return 0, nil
}

func ldy(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.Y = v
	c.setZN(c.Y)
	return 0, nil
}

func sta(c *CPU, b Bus, m Mode) (int, error) { return 0, b.Write(c.operandAddr, c.A) }
func stx(c *CPU, b Bus, m Mode) (int, error) { return 0, b.Write(c.operandAddr, c.X) }
func sty(c *CPU, b Bus, m Mode) (int, error) { return 0, b.Write(c.operandAddr, c.Y) }

// --- transfers ---

func tax(c *CPU, b Bus, m Mode) (int, error) { c.X = c.A; c.setZN(c.X); return 0, nil }
func tay(c *CPU, b Bus, m Mode) (int, error) { c.Y = c.A; c.setZN(c.Y); return 0, nil }
func txa(c *CPU, b Bus, m Mode) (int, error) { c.A = c.X; c.setZN(c.A); return 0, nil }
func tya(c *CPU, b Bus, m Mode) (int, error) { c.A = c.Y; c.setZN(c.A); return 0, nil }
func tsx(c *CPU, b Bus, m Mode) (int, error) { c.X = c.S; c.setZN(c.X); return 0, nil }
func txs(c *CPU, b Bus, m Mode) (int, error) { c.S = c.X; return 0, nil }

// --- stack ---

func pha(c *CPU, b Bus, m Mode) (int, error) { return 0, c.push(b, c.A) }

func php(c *CPU, b Bus, m Mode) (int, error) {
	return 0, c.push(b, PackStatus(c.Flags, true))
}

func pla(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.pull(b)
	if err != nil {
		return 0, err
	}
	c.A = v
	c.setZN(c.A)
	return 0, nil
}

func plp(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.pull(b)
	if err != nil {
		return 0, err
	}
	c.Flags = UnpackStatus(v)
	return 0, nil
}

// --- arithmetic ---

func adc(c *CPU, b Bus, m Mode) (int, error) {
	operand, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	var carry uint16
	if c.Flags.Carry {
		carry = 1
	}
	sum := uint16(c.A) + uint16(operand) + carry
	result := byte(sum)

	c.Flags.Overflow = (^(c.A ^ operand) & (c.A ^ result) & 0x80) != 0
	c.Flags.Carry = sum > 0xFF
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

func sbc(c *CPU, b Bus, m Mode) (int, error) {
	operand, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	var carry uint16
	if c.Flags.Carry {
		carry = 1
	}
	inverted := ^operand
	sum := uint16(c.A) + uint16(inverted) + carry
	result := byte(sum)

	c.Flags.Overflow = (^(c.A ^ inverted) & (c.A ^ result) & 0x80) != 0
	c.Flags.Carry = sum > 0xFF
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

// --- logic ---

func and(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.A &= v
	c.setZN(c.A)
	return 0, nil
}

func ora(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.A |= v
	c.setZN(c.A)
	return 0, nil
}

func eor(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.A ^= v
	c.setZN(c.A)
	return 0, nil
}

// --- shifts/rotates ---

func asl(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.readShiftOperand(b, m)
	if err != nil {
		return 0, err
	}
	c.Flags.Carry = v&0x80 != 0
	result := v << 1
	c.setZN(result)
	return 0, c.writeShiftOperand(b, m, result)
}

func lsr(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.readShiftOperand(b, m)
	if err != nil {
		return 0, err
	}
	c.Flags.Carry = v&0x01 != 0
	result := v >> 1
	c.setZN(result)
	return 0, c.writeShiftOperand(b, m, result)
}

func rol(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.readShiftOperand(b, m)
	if err != nil {
		return 0, err
	}
	var oldCarry byte
	if c.Flags.Carry {
		oldCarry = 1
	}
	c.Flags.Carry = v&0x80 != 0
	result := (v << 1) | oldCarry
	c.setZN(result)
	return 0, c.writeShiftOperand(b, m, result)
}

func ror(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.readShiftOperand(b, m)
	if err != nil {
		return 0, err
	}
	var oldCarry byte
	if c.Flags.Carry {
		oldCarry = 0x80
	}
	c.Flags.Carry = v&0x01 != 0
	result := (v >> 1) | oldCarry
	c.setZN(result)
	return 0, c.writeShiftOperand(b, m, result)
}

func (c *CPU) readShiftOperand(b Bus, m Mode) (byte, error) {
	if m == Accumulator {
		return c.A, nil
	}
	return c.operand(b)
}

func (c *CPU) writeShiftOperand(b Bus, m Mode, v byte) error {
	if m == Accumulator {
		c.A = v
		return nil
	}
	return b.Write(c.operandAddr, v)
}

// --- compares ---

// compare implements CMP/CPX/CPY: N is set from bit 7 of the 8-bit
// difference, not bit 11 of some widened value — the latter is a known
// source bug this core does not reproduce.
func compare(c *CPU, b Bus, reg byte) error {
	v, err := c.operand(b)
	if err != nil {
		return err
	}
	diff := reg - v
	c.Flags.Carry = reg >= v
	c.Flags.Zero = reg == v
	c.Flags.Negative = diff&0x80 != 0
	return nil
}

func cmp(c *CPU, b Bus, m Mode) (int, error) { return 0, compare(c, b, c.A) }
func cpx(c *CPU, b Bus, m Mode) (int, error) { return 0, compare(c, b, c.X) }
func cpy(c *CPU, b Bus, m Mode) (int, error) { return 0, compare(c, b, c.Y) }

// --- increments/decrements ---

func inc(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	v++
	c.setZN(v)
	return 0, b.Write(c.operandAddr, v)
}

func dec(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	v--
	c.setZN(v)
	return 0, b.Write(c.operandAddr, v)
}

func inx(c *CPU, b Bus, m Mode) (int, error) { c.X++; c.setZN(c.X); return 0, nil }
func iny(c *CPU, b Bus, m Mode) (int, error) { c.Y++; c.setZN(c.Y); return 0, nil }
func dex(c *CPU, b Bus, m Mode) (int, error) { c.X--; c.setZN(c.X); return 0, nil }
func dey(c *CPU, b Bus, m Mode) (int, error) { c.Y--; c.setZN(c.Y); return 0, nil }

// --- branches ---

// branch implements the eight conditional branches. When taken, PC advances
// by the sign-extended branchOffset; the extra cycle count is 1 when
// taken, 2 when taken and the branch crosses a page — never a penalty on
// a not-taken branch.
func branch(c *CPU, taken bool) int {
	if !taken {
		return 0
	}
	old := c.PC
	newPC := uint16(int32(c.PC) + int32(c.branchOffset))
	c.PC = newPC
	if old&0xFF00 != newPC&0xFF00 {
		return 2
	}
	return 1
}

func bcc(c *CPU, b Bus, m Mode) (int, error) { return branch(c, !c.Flags.Carry), nil }
func bcs(c *CPU, b Bus, m Mode) (int, error) { return branch(c, c.Flags.Carry), nil }
func beq(c *CPU, b Bus, m Mode) (int, error) { return branch(c, c.Flags.Zero), nil }
func bne(c *CPU, b Bus, m Mode) (int, error) { return branch(c, !c.Flags.Zero), nil }
func bmi(c *CPU, b Bus, m Mode) (int, error) { return branch(c, c.Flags.Negative), nil }
func bpl(c *CPU, b Bus, m Mode) (int, error) { return branch(c, !c.Flags.Negative), nil }
func bvc(c *CPU, b Bus, m Mode) (int, error) { return branch(c, !c.Flags.Overflow), nil }
func bvs(c *CPU, b Bus, m Mode) (int, error) { return branch(c, c.Flags.Overflow), nil }

// --- jumps/subroutines ---

func jmp(c *CPU, b Bus, m Mode) (int, error) { c.PC = c.operandAddr; return 0, nil }

func jsr(c *CPU, b Bus, m Mode) (int, error) {
	if err := c.pushWord(b, c.PC-1); err != nil {
		return 0, err
	}
	c.PC = c.operandAddr
	return 0, nil
}

func rts(c *CPU, b Bus, m Mode) (int, error) {
	pc, err := c.pullWord(b)
	if err != nil {
		return 0, err
	}
	c.PC = pc + 1
	return 0, nil
}

func rti(c *CPU, b Bus, m Mode) (int, error) {
	status, err := c.pull(b)
	if err != nil {
		return 0, err
	}
	c.Flags = UnpackStatus(status)
	pc, err := c.pullWord(b)
	if err != nil {
		return 0, err
	}
	c.PC = pc
	return 0, nil
}

// --- flag ops ---

func clc(c *CPU, b Bus, m Mode) (int, error) { c.Flags.Carry = false; return 0, nil }
func sec(c *CPU, b Bus, m Mode) (int, error) { c.Flags.Carry = true; return 0, nil }
func cli(c *CPU, b Bus, m Mode) (int, error) { c.Flags.IRQOff = false; return 0, nil }
func sei(c *CPU, b Bus, m Mode) (int, error) { c.Flags.IRQOff = true; return 0, nil }
func clv(c *CPU, b Bus, m Mode) (int, error) { c.Flags.Overflow = false; return 0, nil }
func cld(c *CPU, b Bus, m Mode) (int, error) { c.Flags.Decimal = false; return 0, nil }
func sed(c *CPU, b Bus, m Mode) (int, error) { c.Flags.Decimal = true; return 0, nil }

// --- BIT ---

func bit(c *CPU, b Bus, m Mode) (int, error) {
	v, err := c.operand(b)
	if err != nil {
		return 0, err
	}
	c.Flags.Zero = (c.A & v) == 0
	c.Flags.Negative = v&0x80 != 0
	c.Flags.Overflow = v&0x40 != 0
	return 0, nil
}

// --- BRK / NOP ---

func brk(c *CPU, b Bus, m Mode) (int, error) {
	c.PC++ // the padding byte after the BRK opcode
	if err := c.pushWord(b, c.PC); err != nil {
		return 0, err
	}
	if err := c.push(b, PackStatus(c.Flags, true)); err != nil {
		return 0, err
	}
	c.Flags.IRQOff = true
	pc, err := c.readVector(b, vectorIRQ)
	if err != nil {
		return 0, err
	}
	c.PC = pc
	return 0, nil
}

func nop(c *CPU, b Bus, m Mode) (int, error) { return 0, nil }
