package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(prgBanks, chrBanks, flags6, flags7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h[0:4], magic[:])
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadBytesRejectsBadMagic(t *testing.T) {
	data := header(1, 1, 0, 0)
	data[0] = 'X'
	_, err := LoadBytes(data)
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestLoadBytesRejectsTruncated(t *testing.T) {
	data := header(2, 1, 0, 0) // declares 32KiB PRG but provides none
	_, err := LoadBytes(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestLoadBytesRejectsNonzeroMapper(t *testing.T) {
	data := header(1, 1, 0x10, 0) // mapper nibble low = 1
	data = append(data, make([]byte, prgBankSize+chrBankSize)...)
	_, err := LoadBytes(data)
	require.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadBytes16KPRGMirrors(t *testing.T) {
	data := header(1, 1, 0, 0)
	prg := make([]byte, prgBankSize)
	prg[0] = 0xAA
	prg[prgBankSize-1] = 0xBB
	data = append(data, prg...)
	data = append(data, make([]byte, chrBankSize)...)

	cart, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Len(t, cart.PRG(), prgBankSize)
	assert.Equal(t, byte(0xAA), cart.ReadPRG(0x8000))
	assert.Equal(t, byte(0xAA), cart.ReadPRG(0xC000)) // mirrored bank
	assert.Equal(t, byte(0xBB), cart.ReadPRG(0xFFFF))
}

func TestLoadBytes32KPRGFillsWindow(t *testing.T) {
	data := header(2, 0, 0, 0)
	prg := make([]byte, 2*prgBankSize)
	prg[0] = 0x11
	prg[2*prgBankSize-1] = 0x22
	data = append(data, prg...)

	cart, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), cart.ReadPRG(0x8000))
	assert.Equal(t, byte(0x22), cart.ReadPRG(0xFFFF))
}

func TestLoadBytesTrainerSkip(t *testing.T) {
	data := header(1, 0, 0x04, 0) // trainer present
	data = append(data, make([]byte, trainerSize)...)
	prg := make([]byte, prgBankSize)
	prg[5] = 0x77
	data = append(data, prg...)

	cart, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0x77), cart.PRG()[5])
}

func TestMirroringDecode(t *testing.T) {
	for _, tc := range []struct {
		name   string
		flags6 byte
		want   Mirroring
	}{
		{"horizontal", 0x00, Horizontal},
		{"vertical", 0x01, Vertical},
		{"four-screen overrides vertical bit", 0x09, FourScreen},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := header(1, 1, tc.flags6, 0)
			data = append(data, make([]byte, prgBankSize+chrBankSize)...)
			cart, err := LoadBytes(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cart.Mirroring())
		})
	}
}
