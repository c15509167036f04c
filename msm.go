package rtcm3

import "math/bits"

// Multiple Signal Message (MSM4-7) decoding, grounded on gnssgo/src/rtcm3.go's
// decode_msm_head/decode_msm4..decode_msm7 (header layout and the
// satellite-column/signal-column field grouping) and on
// original_source/c/src/decode.c's rtcm3_decode_msm_internal for the
// generic per-family assembly algorithm. One parameterized core serves
// all four message families; DecodeMSM4..DecodeMSM7 are thin, asserting
// entry points, per spec.md §9's guidance against four near-duplicate
// decoders.

// msmFamily captures the field widths and scale factors that
// distinguish MSM4/5 (standard resolution) from MSM6/7 (extended
// resolution), and the presence of per-satellite/per-cell phase range
// rate in MSM5/7.
type msmFamily struct {
	extended  bool
	hasRate   bool
	prWidth   int
	cpWidth   int
	lockWidth int
	cnrWidth  int
	prScale   float64
	cpScale   float64
	cnrScale  float64
}

var msmFamilies = map[int]msmFamily{
	4: {extended: false, hasRate: false, prWidth: 15, cpWidth: 22, lockWidth: 4, cnrWidth: 6, prScale: p2_24, cpScale: p2_29, cnrScale: 1},
	5: {extended: false, hasRate: true, prWidth: 15, cpWidth: 22, lockWidth: 4, cnrWidth: 6, prScale: p2_24, cpScale: p2_29, cnrScale: 1},
	6: {extended: true, hasRate: false, prWidth: 20, cpWidth: 24, lockWidth: 10, cnrWidth: 10, prScale: p2_29, cpScale: p2_31, cnrScale: p2_4},
	7: {extended: true, hasRate: true, prWidth: 20, cpWidth: 24, lockWidth: 10, cnrWidth: 10, prScale: p2_29, cpScale: p2_31, cnrScale: p2_4},
}

func (fam msmFamily) prInvalid() int32 {
	if fam.extended {
		return msmPrExtInvalid
	}
	return msmPrInvalid
}

func (fam msmFamily) cpInvalid() int32 {
	if fam.extended {
		return msmCpExtInvalid
	}
	return msmCpInvalid
}

func (fam msmFamily) lockSeconds(raw uint32) float64 {
	if fam.extended {
		return msmLockTimeExtended(raw)
	}
	return msmLockTime(raw)
}

// constellationFromMsgNum maps an MSM message number to its GNSS system
// and family (1-7; only families 4-7 are decoded by DecodeMSM4..DecodeMSM7
// and Decode), per the contiguous 10-message blocks RTCM assigns
// each constellation (107x GPS, 108x GLONASS, 109x Galileo, 110x SBAS,
// 111x QZSS, 112x BeiDou, 113x NavIC).
func constellationFromMsgNum(msgNum int) (Constellation, int) {
	switch {
	case msgNum >= 1071 && msgNum <= 1077:
		return ConstellationGPS, msgNum - 1070
	case msgNum >= 1081 && msgNum <= 1087:
		return ConstellationGLO, msgNum - 1080
	case msgNum >= 1091 && msgNum <= 1097:
		return ConstellationGAL, msgNum - 1090
	case msgNum >= 1101 && msgNum <= 1107:
		return ConstellationSBAS, msgNum - 1100
	case msgNum >= 1111 && msgNum <= 1117:
		return ConstellationQZS, msgNum - 1110
	case msgNum >= 1121 && msgNum <= 1127:
		return ConstellationBDS, msgNum - 1120
	case msgNum >= 1131 && msgNum <= 1137:
		return ConstellationNavIC, msgNum - 1130
	default:
		return ConstellationInvalid, 0
	}
}

// readMsmHeader parses the header common to every MSM message (§4.5):
// message number, station ID, constellation-specific epoch time,
// multiple-message/IODS/clock/smoothing flags, satellite mask, signal
// mask, and cell mask. The cell mask's size (NSat*NSig) is checked
// against MSM_MAX_CELLS before it is read.
func readMsmHeader(buff []uint8) (MsmHeader, int, error) {
	i := 0
	var h MsmHeader
	h.MessageNum = int(getBitU(buff, i, 12))
	i += 12
	h.StationID = int(getBitU(buff, i, 12))
	i += 12

	h.Constellation, _ = constellationFromMsgNum(h.MessageNum)
	if h.Constellation == ConstellationInvalid {
		trace(2, "rejected message: %d is not an MSM message number\n", h.MessageNum)
		return MsmHeader{}, i, mismatch("not an MSM message number")
	}

	if h.Constellation == ConstellationGLO {
		h.GloDay = int(getBitU(buff, i, 3))
		i += 3
		h.TowMs = getBitU(buff, i, 27)
		i += 27
	} else {
		raw := getBitU(buff, i, 30)
		i += 30
		if h.Constellation == ConstellationBDS {
			raw = normalizeBDSTow(raw)
		}
		h.TowMs = raw
	}

	h.Multiple = getBitU(buff, i, 1) != 0
	i++
	h.IODS = int(getBitU(buff, i, 3))
	i += 3
	i += 7 // reserved
	h.ClockSteer = int(getBitU(buff, i, 2))
	i += 2
	h.ExtClock = int(getBitU(buff, i, 2))
	i += 2
	h.DivFree = getBitU(buff, i, 1) != 0
	i++
	h.Smooth = int(getBitU(buff, i, 3))
	i += 3

	h.SatelliteMask = getBitU64(buff, i, 64)
	i += 64
	h.SignalMask = getBitU(buff, i, 32)
	i += 32

	h.NSat = bits.OnesCount64(h.SatelliteMask)
	h.NSig = bits.OnesCount32(h.SignalMask)
	nslots := h.NSat * h.NSig
	if nslots > MSM_MAX_CELLS {
		trace(2, "rejected message: cell mask size %d exceeds %d\n", nslots, MSM_MAX_CELLS)
		return MsmHeader{}, i, invalid("cell mask exceeds maximum cell count")
	}
	for k := 0; k < nslots; k++ {
		h.CellMask[k] = getBitU(buff, i, 1) != 0
		i++
	}
	trace(4, "msm header: type=%d station=%d constellation=%d tow=%d nsat=%d nsig=%d\n",
		h.MessageNum, h.StationID, h.Constellation, h.TowMs, h.NSat, h.NSig)
	return h, i, nil
}

func decodeMsmBody(buff []uint8, h MsmHeader, i int, fam msmFamily) MsmMessage {
	msg := MsmMessage{Header: h}
	nsat := h.NSat

	// Satellite- and cell-indexed scratch buffers are fixed at the MSM
	// format maxima (§5: no allocation, no variable-length arrays sized
	// by header-controlled counts) and indexed only up to nsat/nActive.
	var roughInt [MSM_SATELLITE_MASK_SIZE]uint32
	for k := 0; k < nsat; k++ {
		roughInt[k] = getBitU(buff, i, 8)
		i += 8
	}
	var fcn [MSM_SATELLITE_MASK_SIZE]uint32
	if fam.hasRate {
		for k := 0; k < nsat; k++ {
			fcn[k] = getBitU(buff, i, 4)
			i += 4
		}
	}
	var roughMod [MSM_SATELLITE_MASK_SIZE]uint32
	for k := 0; k < nsat; k++ {
		roughMod[k] = getBitU(buff, i, 10)
		i += 10
	}
	var roughRate [MSM_SATELLITE_MASK_SIZE]int32
	if fam.hasRate {
		for k := 0; k < nsat; k++ {
			roughRate[k] = getBits(buff, i, 14)
			i += 14
		}
	}

	for satPos := 0; satPos < nsat; satPos++ {
		var sd MsmSatData
		sd.GloFCN = MSM_GLO_FCN_UNKNOWN
		if roughInt[satPos] != msmRoughRangeInvalid {
			sd.RoughRangeMs = float64(roughInt[satPos]) + float64(roughMod[satPos])*p2_10
			sd.RoughRangeValid = true
		}
		if fam.hasRate {
			if h.Constellation == ConstellationGLO {
				sd.GloFCN = uint8(fcn[satPos])
			}
			if roughRate[satPos] != msmRoughRateInvalid {
				sd.RoughRateMS = float64(roughRate[satPos])
				sd.RoughRateValid = true
			}
		}
		msg.Sats[satPos] = sd
	}

	nslots := nsat * h.NSig
	nActive := 0
	for k := 0; k < nslots; k++ {
		if h.CellMask[k] {
			nActive++
		}
	}

	var pr [MSM_MAX_CELLS]int32
	for k := 0; k < nActive; k++ {
		pr[k] = getBits(buff, i, fam.prWidth)
		i += fam.prWidth
	}
	var cp [MSM_MAX_CELLS]int32
	for k := 0; k < nActive; k++ {
		cp[k] = getBits(buff, i, fam.cpWidth)
		i += fam.cpWidth
	}
	var lock [MSM_MAX_CELLS]uint32
	for k := 0; k < nActive; k++ {
		lock[k] = getBitU(buff, i, fam.lockWidth)
		i += fam.lockWidth
	}
	var half [MSM_MAX_CELLS]bool
	for k := 0; k < nActive; k++ {
		half[k] = getBitU(buff, i, 1) != 0
		i++
	}
	var cnr [MSM_MAX_CELLS]uint32
	for k := 0; k < nActive; k++ {
		cnr[k] = getBitU(buff, i, fam.cnrWidth)
		i += fam.cnrWidth
	}
	var rate [MSM_MAX_CELLS]int32
	if fam.hasRate {
		for k := 0; k < nActive; k++ {
			rate[k] = getBits(buff, i, 15)
			i += 15
		}
	}

	prInvalid := fam.prInvalid()
	cpInvalid := fam.cpInvalid()
	cellIdx := 0
	for satPos := 0; satPos < nsat; satPos++ {
		sat := msg.Sats[satPos]
		for sigPos := 0; sigPos < h.NSig; sigPos++ {
			if !h.CellMask[satPos*h.NSig+sigPos] {
				continue
			}
			var sig MsmSigData
			if sat.RoughRangeValid && pr[cellIdx] != prInvalid {
				sig.PseudorangeMs = sat.RoughRangeMs + float64(pr[cellIdx])*fam.prScale
				sig.Flags.setBit(flagValidPR, true)
			}
			if sat.RoughRangeValid && cp[cellIdx] != cpInvalid {
				sig.CarrierPhaseMs = sat.RoughRangeMs + float64(cp[cellIdx])*fam.cpScale
				sig.Flags.setBit(flagValidCP, true)
			}
			sig.LockTimeS = fam.lockSeconds(lock[cellIdx])
			sig.Flags.setBit(flagValidLock, true)
			sig.Flags.setBit(flagHalfCycle, half[cellIdx])
			if cnr[cellIdx] != 0 {
				sig.CNR = float64(cnr[cellIdx]) * fam.cnrScale
				sig.Flags.setBit(flagValidCNR, true)
			}
			if fam.hasRate && sat.RoughRateValid && rate[cellIdx] != msmDopInvalid {
				sig.RangeRateMS = sat.RoughRateMS + float64(rate[cellIdx])*0.0001
				sig.Flags.setBit(flagValidDoppler, true)
			}
			msg.Signals[cellIdx] = sig
			cellIdx++
		}
	}
	msg.NSignals = cellIdx
	return msg
}

func decodeMsm(buff []uint8, wantFamily int) (MsmMessage, error) {
	h, i, err := readMsmHeader(buff)
	if err != nil {
		return MsmMessage{}, err
	}
	_, family := constellationFromMsgNum(h.MessageNum)
	if family != wantFamily {
		trace(2, "rejected message: want MSM%d, got MSM%d\n", wantFamily, family)
		return MsmMessage{}, mismatch("expected MSM family")
	}
	if h.Constellation == ConstellationGLO {
		if h.TowMs > RTCM_GLO_MAX_TOW_MS {
			trace(2, "rejected message: GLONASS epoch time %d out of range\n", h.TowMs)
			return MsmMessage{}, invalid("GLONASS epoch time out of range")
		}
	} else if h.TowMs > RTCM_MAX_TOW_MS {
		trace(2, "rejected message: TOW %d out of range\n", h.TowMs)
		return MsmMessage{}, invalid("TOW out of range")
	}
	return decodeMsmBody(buff, h, i, msmFamilies[wantFamily]), nil
}

// DecodeMSM4 decodes a standard-resolution MSM4 message for any
// supported constellation.
func DecodeMSM4(buff []uint8) (MsmMessage, error) { return decodeMsm(buff, 4) }

// DecodeMSM5 decodes a standard-resolution MSM5 message, which adds
// per-satellite/per-cell Doppler to MSM4's fields.
func DecodeMSM5(buff []uint8) (MsmMessage, error) { return decodeMsm(buff, 5) }

// DecodeMSM6 decodes an extended-resolution MSM6 message.
func DecodeMSM6(buff []uint8) (MsmMessage, error) { return decodeMsm(buff, 6) }

// DecodeMSM7 decodes an extended-resolution MSM7 message, which adds
// per-satellite/per-cell Doppler to MSM6's fields.
func DecodeMSM7(buff []uint8) (MsmMessage, error) { return decodeMsm(buff, 7) }
