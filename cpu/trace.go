package cpu

import "fmt"

// formatTrace renders one instruction in the PPPP  BB BB BB  MNE  A:AA X:XX
// Y:YY P:PP SP:SS convention: PC and all register fields in uppercase hex,
// the opcode byte plus up to two operand bytes, and the mnemonic. opByte
// and opBytes are the bytes Step already fetched for this instruction;
// formatTrace only renders them.
func formatTrace(c *CPU, pc uint16, opByte byte, op opcode, opBytes []byte) string {
	bytesCol := fmt.Sprintf("%02X", opByte)
	for _, v := range opBytes {
		bytesCol += fmt.Sprintf(" %02X", v)
	}
	for pad := len(opBytes); pad < 2; pad++ {
		bytesCol += "   "
	}

	status := PackStatus(c.Flags, false)

	return fmt.Sprintf("%04X  %-9s %-4s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc, bytesCol, op.name, c.A, c.X, c.Y, status, c.S)
}
