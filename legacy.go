package rtcm3

// Legacy GPS (1001-1004) and GLONASS (1010, 1012) observation message
// decoders, grounded on gnssgo/src/rtcm3.go's decode_head1001,
// decode_type1001..decode_type1004, decode_head1009 and
// decode_type1010/decode_type1012 (bit widths and per-satellite loop
// structure), with the exact invalid-value sentinels taken from
// original_source/c/src/decode.c.

const (
	msgTypeStart = 24 // preamble(8) + reserved(6) + length(10) is handled by the caller; message body starts at bit 0 of the payload the caller hands in

	gloPrL1Invalid = 0x1FFFFFF // 25-bit all-ones unsigned GLONASS pseudorange sentinel
)

func readMsgNum(buff []uint8) int {
	return int(getBitU(buff, 0, 12))
}

// readObsHeader parses the common GPS legacy observation header (§4.3):
// message number, station ID, 30-bit TOW in ms, sync flag, satellite
// count, divergence-free smoothing flag and smoothing interval.
func readObsHeader(buff []uint8) (ObsHeader, int) {
	i := 0
	h := ObsHeader{}
	h.MessageNum = int(getBitU(buff, i, 12))
	i += 12
	h.StationID = int(getBitU(buff, i, 12))
	i += 12
	h.TowMs = getBitU(buff, i, 30)
	i += 30
	h.Sync = getBitU(buff, i, 1) != 0
	i++
	h.NSat = int(getBitU(buff, i, 5))
	i += 5
	h.DivFree = getBitU(buff, i, 1) != 0
	i++
	h.Smooth = int(getBitU(buff, i, 3))
	i += 3
	trace(4, "obs header: type=%d station=%d tow=%d nsat=%d\n", h.MessageNum, h.StationID, h.TowMs, h.NSat)
	return h, i
}

// readGloObsHeader is the GLONASS counterpart, using the 27-bit tk epoch
// time field (DF034) in place of the GPS 30-bit TOW.
func readGloObsHeader(buff []uint8) (ObsHeader, int) {
	i := 0
	h := ObsHeader{}
	h.MessageNum = int(getBitU(buff, i, 12))
	i += 12
	h.StationID = int(getBitU(buff, i, 12))
	i += 12
	h.TowMs = getBitU(buff, i, 27)
	i += 27
	h.Sync = getBitU(buff, i, 1) != 0
	i++
	h.NSat = int(getBitU(buff, i, 5))
	i += 5
	h.DivFree = getBitU(buff, i, 1) != 0
	i++
	h.Smooth = int(getBitU(buff, i, 3))
	i += 3
	trace(4, "glo obs header: type=%d station=%d tk=%d nsat=%d\n", h.MessageNum, h.StationID, h.TowMs, h.NSat)
	return h, i
}

func checkMsgNum(buff []uint8, want int) error {
	if got := readMsgNum(buff); got != want {
		trace(2, "rejected message: want type %d, got %d\n", want, got)
		return mismatch("expected message type")
	}
	return nil
}

// decodeL1 reads the L1 block shared by every legacy GPS message and
// fills the first FreqData slot.
func decodeL1(buff []uint8, i int, withAmbCnr bool) (FreqData, int) {
	var f FreqData
	_ = getBitU(buff, i, 1) // DF010 code indicator, not surfaced
	i++
	pr1 := getBitU(buff, i, 24)
	i += 24
	ppr1 := getBits(buff, i, 20)
	i += 20
	lock1 := getBitU(buff, i, 7)
	i += 7

	var amb uint32
	if withAmbCnr {
		amb = getBitU(buff, i, 8)
		i += 8
		cnr1 := getBitU(buff, i, 8)
		i += 8
		if cnr1 != 0 {
			f.CNR = float64(cnr1) * 0.25
			f.ValidCNR = true
		}
	}

	if pr1 != prL1Invalid {
		f.Pseudorange = float64(pr1)*0.02 + float64(amb)*PRUNIT_GPS
		f.ValidPR = true
	}
	if int32(ppr1) != cpInvalid && f.ValidPR {
		f.CarrierPhase = f.Pseudorange + float64(ppr1)*0.0005
		f.ValidCP = true
	}
	f.LockTimeS = float64(legacyLockTime(lock1))
	f.ValidLock = f.ValidCP
	return f, i
}

// decodeL2 reads the L2 block relative to an already-decoded L1 block.
func decodeL2(buff []uint8, i int, l1 FreqData, withCnr bool) (FreqData, int) {
	var f FreqData
	_ = getBitU(buff, i, 2) // DF016 code indicator
	i += 2
	prdiff := getBits(buff, i, 14)
	i += 14
	ppr2 := getBits(buff, i, 20)
	i += 20
	lock2 := getBitU(buff, i, 7)
	i += 7
	if withCnr {
		cnr2 := getBitU(buff, i, 8)
		i += 8
		if cnr2 != 0 {
			f.CNR = float64(cnr2) * 0.25
			f.ValidCNR = true
		}
	}

	if l1.ValidPR && prdiff != prL2DiffInval {
		f.Pseudorange = l1.Pseudorange + float64(prdiff)*0.02
		f.ValidPR = true
	}
	if l1.ValidPR && int32(ppr2) != cpInvalid {
		f.CarrierPhase = l1.Pseudorange + float64(ppr2)*0.0005
		f.ValidCP = true
	}
	f.LockTimeS = float64(legacyLockTime(lock2))
	f.ValidLock = f.ValidCP
	return f, i
}

func decodeGpsObs(buff []uint8, msgType int) (ObsMessage, error) {
	h, i := readObsHeader(buff)
	if h.TowMs > RTCM_MAX_TOW_MS {
		return ObsMessage{}, invalid("TOW out of range")
	}
	msg := ObsMessage{Header: h}
	withAmbCnr := msgType == 1002 || msgType == 1004
	withL2 := msgType == 1003 || msgType == 1004
	withL2Cnr := msgType == 1004

	for j := 0; j < h.NSat && j < len(msg.Sats); j++ {
		var sat SatData
		sat.SVID = uint8(getBitU(buff, i, 6))
		i += 6
		l1, ni := decodeL1(buff, i, withAmbCnr)
		i = ni
		sat.Obs[0] = l1
		if withL2 {
			l2, ni2 := decodeL2(buff, i, l1, withL2Cnr)
			i = ni2
			sat.Obs[1] = l2
		}
		msg.Sats[j] = sat
	}
	return msg, nil
}

// Decode1001 decodes an L1-only GPS observation message.
func Decode1001(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1001); err != nil {
		return ObsMessage{}, err
	}
	return decodeGpsObs(buff, 1001)
}

// Decode1002 decodes an L1-only GPS observation message with
// pseudorange ambiguity and carrier-to-noise ratio.
func Decode1002(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1002); err != nil {
		return ObsMessage{}, err
	}
	return decodeGpsObs(buff, 1002)
}

// Decode1003 decodes an L1/L2 GPS observation message.
func Decode1003(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1003); err != nil {
		return ObsMessage{}, err
	}
	return decodeGpsObs(buff, 1003)
}

// Decode1004 decodes an L1/L2 GPS observation message with ambiguity
// and carrier-to-noise ratio on both frequencies.
func Decode1004(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1004); err != nil {
		return ObsMessage{}, err
	}
	return decodeGpsObs(buff, 1004)
}

// decodeGloL1 mirrors decodeL1 for the GLONASS 25-bit pseudorange field
// and 7-bit ambiguity, gating carrier-phase validity on the frequency
// channel number per §4.3's FCN <= MT1012_GLO_MAX_FCN rule.
func decodeGloL1(buff []uint8, i int, fcnKnown bool, withAmbCnr bool) (FreqData, int) {
	var f FreqData
	_ = getBitU(buff, i, 1) // DF039 code indicator
	i++
	pr1 := getBitU(buff, i, 25)
	i += 25
	ppr1 := getBits(buff, i, 20)
	i += 20
	lock1 := getBitU(buff, i, 7)
	i += 7

	var amb uint32
	if withAmbCnr {
		amb = getBitU(buff, i, 7)
		i += 7
		cnr1 := getBitU(buff, i, 8)
		i += 8
		if cnr1 != 0 {
			f.CNR = float64(cnr1) * 0.25
			f.ValidCNR = true
		}
	}

	if pr1 != gloPrL1Invalid {
		f.Pseudorange = float64(pr1)*0.02 + float64(amb)*PRUNIT_GLO
		f.ValidPR = true
	}
	if fcnKnown && int32(ppr1) != cpInvalid && f.ValidPR {
		f.CarrierPhase = f.Pseudorange + float64(ppr1)*0.0005
		f.ValidCP = true
	}
	f.LockTimeS = float64(legacyLockTime(lock1))
	f.ValidLock = f.ValidCP
	return f, i
}

func decodeGloL2(buff []uint8, i int, l1 FreqData, fcnKnown bool) (FreqData, int) {
	var f FreqData
	_ = getBitU(buff, i, 2) // DF040 code indicator
	i += 2
	prdiff := getBits(buff, i, 14)
	i += 14
	ppr2 := getBits(buff, i, 20)
	i += 20
	lock2 := getBitU(buff, i, 7)
	i += 7
	cnr2 := getBitU(buff, i, 8)
	i += 8
	if cnr2 != 0 {
		f.CNR = float64(cnr2) * 0.25
		f.ValidCNR = true
	}

	if l1.ValidPR && prdiff != prL2DiffInval {
		f.Pseudorange = l1.Pseudorange + float64(prdiff)*0.02
		f.ValidPR = true
	}
	if fcnKnown && l1.ValidPR && int32(ppr2) != cpInvalid {
		f.CarrierPhase = l1.Pseudorange + float64(ppr2)*0.0005
		f.ValidCP = true
	}
	f.LockTimeS = float64(legacyLockTime(lock2))
	f.ValidLock = f.ValidCP
	return f, i
}

func decodeGloObs(buff []uint8, msgType int) (ObsMessage, error) {
	h, i := readGloObsHeader(buff)
	if h.TowMs > RTCM_GLO_MAX_TOW_MS {
		return ObsMessage{}, invalid("GLONASS epoch time out of range")
	}
	msg := ObsMessage{Header: h}
	withL2 := msgType == 1012

	for j := 0; j < h.NSat && j < len(msg.Sats); j++ {
		var sat SatData
		sat.SVID = uint8(getBitU(buff, i, 6))
		i += 6
		fcn := getBitU(buff, i, 5)
		i += 5
		sat.FCN = uint8(fcn)
		fcnKnown := fcn <= MT1012_GLO_MAX_FCN

		l1, ni := decodeGloL1(buff, i, fcnKnown, true)
		i = ni
		sat.Obs[0] = l1
		if withL2 {
			l2, ni2 := decodeGloL2(buff, i, l1, fcnKnown)
			i = ni2
			sat.Obs[1] = l2
		}
		msg.Sats[j] = sat
	}
	return msg, nil
}

// Decode1010 decodes an L1-only GLONASS observation message.
func Decode1010(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1010); err != nil {
		return ObsMessage{}, err
	}
	return decodeGloObs(buff, 1010)
}

// Decode1012 decodes an L1/L2 GLONASS observation message.
func Decode1012(buff []uint8) (ObsMessage, error) {
	if err := checkMsgNum(buff, 1012); err != nil {
		return ObsMessage{}, err
	}
	return decodeGloObs(buff, 1012)
}
