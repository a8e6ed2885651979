package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/cartridge"
)

func TestCPUReadWriteOnlyRegisters(t *testing.T) {
	r := New(nil, cartridge.Horizontal)
	for _, reg := range []uint8{RegControl, RegMask, RegOAMAddr, RegScroll, RegAddr} {
		_, err := r.CPURead(reg)
		require.ErrorIs(t, err, ErrReadWriteOnly, "reg %d should be write-only", reg)
	}
}

func TestCPUReadStatusAndOAMDataDoNotError(t *testing.T) {
	r := New(nil, cartridge.Horizontal)
	_, err := r.CPURead(RegStatus)
	require.NoError(t, err)
	_, err = r.CPURead(RegOAMData)
	require.NoError(t, err)
}

func TestAddrLatchHighThenLow(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0x12))
	require.NoError(t, r.CPUWrite(RegAddr, 0x34))
	assert.Equal(t, uint16(0x1234), r.addrLatch)
}

func TestAddrLatchMaskedTo14Bits(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0xFF))
	require.NoError(t, r.CPUWrite(RegAddr, 0xFF))
	assert.Equal(t, uint16(0x3FFF), r.addrLatch)
}

func TestPPUDataCHRReadIsBuffered(t *testing.T) {
	chr := make([]byte, 0x2000)
	chr[0x0010] = 0xAB
	r := New(chr, cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0x00))
	require.NoError(t, r.CPUWrite(RegAddr, 0x10))

	first, err := r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, byte(0), first, "first read returns stale buffer, not the fresh byte")

	second, err := r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), second)
}

func TestPPUDataNametableReadIsDirect(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0x20))
	require.NoError(t, r.CPUWrite(RegAddr, 0x10))
	require.NoError(t, r.CPUWrite(RegData, 0xCD))

	require.NoError(t, r.CPUWrite(RegAddr, 0x20))
	require.NoError(t, r.CPUWrite(RegAddr, 0x10))
	v, err := r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, byte(0xCD), v, "nametable reads are direct, not buffered")
}

func TestPPUDataPaletteReadIsDirect(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0x3F))
	require.NoError(t, r.CPUWrite(RegAddr, 0x05))
	require.NoError(t, r.CPUWrite(RegData, 0x99))

	require.NoError(t, r.CPUWrite(RegAddr, 0x3F))
	require.NoError(t, r.CPUWrite(RegAddr, 0x05))
	v, err := r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), v, "palette reads are direct, not buffered")
}

func TestAddrIncrementByOneOrThirtyTwo(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	require.NoError(t, r.CPUWrite(RegAddr, 0x00))
	require.NoError(t, r.CPUWrite(RegAddr, 0x00))
	_, err := r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), r.addrLatch)

	r.CPUWrite(RegControl, controlIncrementBit)
	require.NoError(t, r.CPUWrite(RegAddr, 0x00))
	require.NoError(t, r.CPUWrite(RegAddr, 0x00))
	_, err = r.CPURead(RegData)
	require.NoError(t, err)
	assert.Equal(t, uint16(32), r.addrLatch)
}

func TestNametableMirroringHorizontal(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Horizontal)
	idx0, err := r.mirrorNametable(0x2000)
	require.NoError(t, err)
	idx1, err := r.mirrorNametable(0x2400)
	require.NoError(t, err)
	idx2, err := r.mirrorNametable(0x2800)
	require.NoError(t, err)
	idx3, err := r.mirrorNametable(0x2C00)
	require.NoError(t, err)

	assert.Equal(t, idx0, idx1)
	assert.Equal(t, idx2, idx3)
	assert.NotEqual(t, idx0, idx2)
}

func TestNametableMirroringVertical(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.Vertical)
	idx0, err := r.mirrorNametable(0x2000)
	require.NoError(t, err)
	idx2, err := r.mirrorNametable(0x2800)
	require.NoError(t, err)
	idx1, err := r.mirrorNametable(0x2400)
	require.NoError(t, err)
	idx3, err := r.mirrorNametable(0x2C00)
	require.NoError(t, err)

	assert.Equal(t, idx0, idx2)
	assert.Equal(t, idx1, idx3)
	assert.NotEqual(t, idx0, idx1)
}

func TestNametableFourScreenUnsupported(t *testing.T) {
	r := New(make([]byte, 0x2000), cartridge.FourScreen)
	_, err := r.mirrorNametable(0x2000)
	require.ErrorIs(t, err, ErrFourScreenUnsupported)
}

func TestOAMDMATrigger(t *testing.T) {
	r := New(nil, cartridge.Horizontal)
	_, pending := r.OAMDMAPending()
	assert.False(t, pending)

	r.TriggerOAMDMA(0x07)
	page, pending := r.OAMDMAPending()
	assert.True(t, pending)
	assert.Equal(t, byte(0x07), page)

	_, pending = r.OAMDMAPending()
	assert.False(t, pending, "pending flag clears after being observed once")
}
