package cpu

// Mode identifies one of the 6502's 13 addressing modes.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// pageCrossPenalty reports whether this mode incurs a +1 cycle when the
// effective address crosses a page boundary. Relative's penalty is
// applied separately by the branch instructions themselves, only when
// the branch is taken.
func (m Mode) pageCrossPenalty() bool {
	switch m {
	case AbsoluteX, AbsoluteY, IndirectY:
		return true
	default:
		return false
	}
}

func (m Mode) operandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndirectX, IndirectY:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 0
	}
}

// resolveAddress reads whatever operand bytes the mode requires, advancing
// PC, and populates operandAddr (for everything but Relative) or
// branchOffset (for Relative, sign-extended to 16 bits per the design
// note that an unextended offset breaks backward branches by 0x100).
func (c *CPU) resolveAddress(b Bus, m Mode) error {
	switch m {
	case Implied, Accumulator:
		return nil

	case Immediate:
		c.operandAddr = c.PC
		c.PC++
		return nil

	case ZeroPage:
		v, err := c.fetch8(b)
		if err != nil {
			return err
		}
		c.operandAddr = uint16(v)
		return nil

	case ZeroPageX:
		v, err := c.fetch8(b)
		if err != nil {
			return err
		}
		c.operandAddr = uint16(v + c.X)
		return nil

	case ZeroPageY:
		v, err := c.fetch8(b)
		if err != nil {
			return err
		}
		c.operandAddr = uint16(v + c.Y)
		return nil

	case Relative:
		v, err := c.fetch8(b)
		if err != nil {
			return err
		}
		c.branchOffset = int16(int8(v))
		return nil

	case Absolute:
		addr, err := c.fetch16(b)
		if err != nil {
			return err
		}
		c.operandAddr = addr
		return nil

	case AbsoluteX:
		base, err := c.fetch16(b)
		if err != nil {
			return err
		}
		addr := base + uint16(c.X)
		c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
		c.operandAddr = addr
		return nil

	case AbsoluteY:
		base, err := c.fetch16(b)
		if err != nil {
			return err
		}
		addr := base + uint16(c.Y)
		c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
		c.operandAddr = addr
		return nil

	case Indirect:
		ptr, err := c.fetch16(b)
		if err != nil {
			return err
		}
		addr, err := c.readIndirect(b, ptr)
		if err != nil {
			return err
		}
		c.operandAddr = addr
		return nil

	case IndirectX:
		zp, err := c.fetch8(b)
		if err != nil {
			return err
		}
		ptr := uint16(zp + c.X) // wraps within page 0
		lo, err := b.Read(ptr & 0x00FF)
		if err != nil {
			return err
		}
		hi, err := b.Read((ptr + 1) & 0x00FF)
		if err != nil {
			return err
		}
		c.operandAddr = uint16(lo) | uint16(hi)<<8
		return nil

	case IndirectY:
		zp, err := c.fetch8(b)
		if err != nil {
			return err
		}
		lo, err := b.Read(uint16(zp))
		if err != nil {
			return err
		}
		hi, err := b.Read(uint16(zp+1) & 0x00FF)
		if err != nil {
			return err
		}
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Y)
		c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
		c.operandAddr = addr
		return nil

	default:
		return nil
	}
}

func (c *CPU) fetch8(b Bus) (byte, error) {
	v, err := b.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

func (c *CPU) fetch16(b Bus) (uint16, error) {
	lo, err := c.fetch8(b)
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch8(b)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// readIndirect fetches the word at ptr, reproducing the 6502's
// indirect-JMP page-boundary bug: when ptr's low byte is 0xFF, the high
// byte is fetched from the start of the same page (ptr & 0xFF00), not
// from the next page.
func (c *CPU) readIndirect(b Bus, ptr uint16) (uint16, error) {
	lo, err := b.Read(ptr)
	if err != nil {
		return 0, err
	}
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi, err := b.Read(hiAddr)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// operand reads the byte the current addressing mode points at. Callers
// using Accumulator mode read c.A directly instead of calling this.
func (c *CPU) operand(b Bus) (byte, error) {
	return b.Read(c.operandAddr)
}

// peekOperandBytes reads the opcode's operand bytes without advancing PC,
// purely for trace formatting; it never mutates CPU state.
func (c *CPU) peekOperandBytes(b Bus, op opcode) []byte {
	n := op.mode.operandBytes()
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := b.Read(c.PC + 1 + uint16(i))
		if err != nil {
			return out[:i]
		}
		out[i] = v
	}
	return out
}
