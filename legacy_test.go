package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build1001OneSat() []byte {
	var w bitWriter
	w.writeU(1001, 12) // message number
	w.writeU(5, 12)    // station id
	w.writeU(100000, 30)
	w.writeU(0, 1) // sync
	w.writeU(1, 5) // nsat
	w.writeU(0, 1) // div-free
	w.writeU(0, 3) // smooth

	w.writeU(3, 6)          // svid
	w.writeU(0, 1)          // code indicator
	w.writeU(12345678, 24)  // pr1
	w.writeS(1000, 20)      // ppr1
	w.writeU(50, 7)         // lock1
	return w.bytes()
}

func TestDecode1001OneSatellite(t *testing.T) {
	buf := build1001OneSat()
	msg, err := Decode1001(buf)
	require.NoError(t, err)
	assert.Equal(t, 1001, msg.Header.MessageNum)
	assert.Equal(t, 5, msg.Header.StationID)
	assert.Equal(t, 1, msg.Header.NSat)

	sat := msg.Sats[0]
	assert.Equal(t, uint8(3), sat.SVID)
	assert.True(t, sat.Obs[0].ValidPR)
	assert.InDelta(t, 12345678.0*0.02, sat.Obs[0].Pseudorange, 1e-6)
	assert.True(t, sat.Obs[0].ValidCP)
	assert.InDelta(t, sat.Obs[0].Pseudorange+1000*0.0005, sat.Obs[0].CarrierPhase, 1e-6)
	assert.InDelta(t, 80.0, sat.Obs[0].LockTimeS, 1e-9)
}

func TestDecode1001RejectsWrongMessageNumber(t *testing.T) {
	buf := build1001OneSat()
	_, err := Decode1002(buf)
	assert.ErrorIs(t, err, ErrMessageTypeMismatch)
}

func build1010OneSatFCN7() []byte {
	var w bitWriter
	w.writeU(1010, 12)
	w.writeU(7, 12)
	w.writeU(50000, 27) // tk
	w.writeU(0, 1)      // sync
	w.writeU(1, 5)      // nsat
	w.writeU(0, 1)
	w.writeU(0, 3)

	w.writeU(9, 6)  // svid
	w.writeU(7, 5)  // fcn raw = 7 (known channel)
	w.writeU(0, 1)  // code indicator
	w.writeU(20000000, 25)
	w.writeS(2000, 20)
	w.writeU(60, 7)  // lock
	w.writeU(3, 7)   // amb
	w.writeU(40, 8)  // cnr
	return w.bytes()
}

func TestDecode1010OneSatelliteKnownFCN(t *testing.T) {
	buf := build1010OneSatFCN7()
	msg, err := Decode1010(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, msg.Header.NSat)

	sat := msg.Sats[0]
	assert.Equal(t, uint8(9), sat.SVID)
	assert.Equal(t, uint8(7), sat.FCN)
	assert.True(t, sat.Obs[0].ValidPR)
	assert.InDelta(t, 20000000.0*0.02+3*PRUNIT_GLO, sat.Obs[0].Pseudorange, 1e-6)
	assert.True(t, sat.Obs[0].ValidCP)
	assert.True(t, sat.Obs[0].ValidCNR)
	assert.InDelta(t, 10.0, sat.Obs[0].CNR, 1e-9)
}
