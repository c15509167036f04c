package rtcm3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMSM7TwoSatTwoSig builds a GPS MSM7 message with satellites {1,2},
// signals {1,2}, and cell mask 0b1011 (sat1/sig2 masked out), the same
// scenario spec.md's worked example walks through by hand.
func buildMSM7TwoSatTwoSig() []byte {
	var w bitWriter
	w.writeU(1077, 12) // GPS MSM7
	w.writeU(10, 12)   // station id
	w.writeU(123456, 30)
	w.writeU(0, 1) // multiple message bit
	w.writeU(0, 3) // iods
	w.writeU(0, 7) // reserved
	w.writeU(0, 2) // clock steering
	w.writeU(0, 2) // external clock
	w.writeU(0, 1) // div-free
	w.writeU(0, 3) // smoothing interval

	satMask := uint64(1)<<63 | uint64(1)<<62 // satellites 1 and 2
	w.writeU(satMask, 64)
	sigMask := uint64(1)<<31 | uint64(1)<<30 // signals 1 and 2
	w.writeU(sigMask, 32)
	w.writeU(0b1011, 4) // cell mask: (sat1,sig1) (sat2,sig1) (sat2,sig2)

	// satellite data
	w.writeU(10, 8) // sat1 rough int ms
	w.writeU(20, 8) // sat2 rough int ms
	w.writeU(0, 4)  // sat1 fcn (unused, GPS)
	w.writeU(0, 4)  // sat2 fcn
	w.writeU(500, 10)
	w.writeU(300, 10)
	w.writeS(50, 14)  // sat1 rough rate
	w.writeS(-30, 14) // sat2 rough rate

	// signal data, 3 active cells: (sat1,sig1) (sat2,sig1) (sat2,sig2)
	w.writeS(1000, 20)
	w.writeS(-500, 20)
	w.writeS(2000, 20)

	w.writeS(3000, 24)
	w.writeS(-1000, 24)
	w.writeS(1500, 24)

	w.writeU(100, 10)
	w.writeU(200, 10)
	w.writeU(300, 10)

	w.writeU(1, 1) // half-cycle
	w.writeU(0, 1)
	w.writeU(1, 1)

	w.writeU(40, 10)
	w.writeU(0, 10) // invalid CNR
	w.writeU(80, 10)

	w.writeS(10, 15)
	w.writeS(-5, 15)
	w.writeS(0, 15)

	return w.bytes()
}

func TestDecodeMSM7TwoSatTwoSig(t *testing.T) {
	buf := buildMSM7TwoSatTwoSig()
	msg, err := DecodeMSM7(buf)
	require.NoError(t, err)

	assert.Equal(t, 2, msg.Header.NSat)
	assert.Equal(t, 2, msg.Header.NSig)
	assert.Equal(t, 3, msg.NSignals)
	assert.Equal(t, ConstellationGPS, msg.Header.Constellation)

	sat0RoughRange := 10.0 + 500.0*p2_10
	sat1RoughRange := 20.0 + 300.0*p2_10
	assert.InDelta(t, sat0RoughRange, msg.Sats[0].RoughRangeMs, 1e-9)
	assert.InDelta(t, sat1RoughRange, msg.Sats[1].RoughRangeMs, 1e-9)
	assert.InDelta(t, 50.0, msg.Sats[0].RoughRateMS, 1e-9)
	assert.InDelta(t, -30.0, msg.Sats[1].RoughRateMS, 1e-9)

	cellA := msg.Signals[0] // sat1/sig1
	assert.True(t, cellA.Flags.ValidPR())
	assert.InDelta(t, sat0RoughRange+1000*p2_29, cellA.PseudorangeMs, 1e-9)
	assert.True(t, cellA.Flags.HalfCycle())
	assert.InDelta(t, 2.5, cellA.CNR, 1e-9)
	assert.True(t, cellA.Flags.ValidDoppler())
	assert.InDelta(t, 50.001, cellA.RangeRateMS, 1e-9)

	cellB := msg.Signals[1] // sat2/sig1
	assert.False(t, cellB.Flags.HalfCycle())
	assert.False(t, cellB.Flags.ValidCNR())
	assert.InDelta(t, sat1RoughRange+(-500)*p2_29, cellB.PseudorangeMs, 1e-9)
	assert.InDelta(t, -30.0005, cellB.RangeRateMS, 1e-9)

	cellC := msg.Signals[2] // sat2/sig2
	assert.True(t, cellC.Flags.HalfCycle())
	assert.InDelta(t, 5.0, cellC.CNR, 1e-9)
	assert.InDelta(t, -30.0, cellC.RangeRateMS, 1e-9)
}

func TestDecodeMSM7RejectsWrongFamily(t *testing.T) {
	buf := buildMSM7TwoSatTwoSig()
	_, err := DecodeMSM4(buf)
	assert.ErrorIs(t, err, ErrMessageTypeMismatch)
}

func TestConstellationFromMsgNum(t *testing.T) {
	c, fam := constellationFromMsgNum(1077)
	assert.Equal(t, ConstellationGPS, c)
	assert.Equal(t, 7, fam)

	c, fam = constellationFromMsgNum(1124)
	assert.Equal(t, ConstellationBDS, c)
	assert.Equal(t, 4, fam)

	c, _ = constellationFromMsgNum(9999)
	assert.Equal(t, ConstellationInvalid, c)
}
