package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build1005Minimum() []byte {
	var w bitWriter
	w.writeU(1005, 12)
	w.writeU(2003, 12) // station id
	w.writeU(0, 6)      // itrf
	w.writeU(1, 1)      // gps
	w.writeU(0, 1)      // glo
	w.writeU(0, 1)      // gal
	w.writeU(1, 1)      // ref station indicator
	w.writeS(15000000, 38) // x, 0.0001m units
	w.writeU(0, 1)          // oscillator indicator
	w.writeU(0, 1)          // reserved
	w.writeS(-15000000, 38) // y
	w.writeU(2, 2)          // quarter cycle
	w.writeS(6000000000, 38)
	return w.bytes()
}

func TestDecode1005Minimum(t *testing.T) {
	buf := build1005Minimum()
	s, err := Decode1005(buf)
	require.NoError(t, err)
	assert.Equal(t, 2003, s.StationID)
	assert.True(t, s.GPSIndicator)
	assert.False(t, s.GLOIndicator)
	assert.True(t, s.RefStationInd)
	assert.InDelta(t, 1500.0, s.ArpX, 1e-6)
	assert.InDelta(t, -1500.0, s.ArpY, 1e-6)
	assert.InDelta(t, 600000.0, s.ArpZ, 1e-6)
	assert.False(t, s.HasAntennaHeight)
}

func build1230Mask1010() []byte {
	var w bitWriter
	w.writeU(1230, 12)
	w.writeU(8, 12)
	w.writeU(1, 1) // bias indicator
	w.writeU(0, 3) // reserved
	w.writeU(0b1010, 4)
	w.writeS(100, 16)  // L1CA present
	w.writeS(-200, 16) // L2CA present
	return w.bytes()
}

func TestDecode1230MaskSelectsPresentBiases(t *testing.T) {
	buf := build1230Mask1010()
	c, err := Decode1230(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b1010), c.FDMASignalMask)
	assert.InDelta(t, 2.0, c.L1CA, 1e-9)
	assert.Equal(t, 0.0, c.L1P)
	assert.InDelta(t, -4.0, c.L2CA, 1e-9)
	assert.Equal(t, 0.0, c.L2P)
}

func build4062(reserved uint32) []byte {
	var w bitWriter
	w.writeU(4062, 12)
	w.writeU(uint64(reserved), 4)
	w.writeU(5, 16) // msg type
	w.writeU(9, 16) // sender id
	w.writeU(3, 8)  // length
	w.writeBytes([]byte{1, 2, 3})
	return w.bytes()
}

func TestDecode4062AcceptsZeroReserved(t *testing.T) {
	buf := build4062(0)
	p, err := Decode4062(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), p.MsgType)
	assert.Equal(t, uint16(9), p.SenderID)
	assert.Equal(t, []byte{1, 2, 3}, p.Data)
}

func TestDecode4062RejectsNonzeroReserved(t *testing.T) {
	buf := build4062(1)
	_, err := Decode4062(buf)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
