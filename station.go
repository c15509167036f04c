package rtcm3

// Reference station and antenna/receiver descriptor decoders
// (1005/1006/1007/1008/1033), the 1029 Unicode text message, and the
// 1230 GLONASS code-phase bias message, grounded on gnssgo/src/rtcm3.go's
// decode_type1005, decode_type1006, decode_type1007/1008, and on
// original_source/c/src/decode.c for the 1230 bias scale factors.

// readCountedString reads an 8-bit length n followed by n raw bytes, the
// shape shared by DF029/DF030, DF032/DF033 etc. It bounds-checks against
// the source buffer rather than trusting the length byte.
func readCountedString(buff []uint8, i int) (string, int, error) {
	n := int(getBitU(buff, i, 8))
	i += 8
	if (i+n*8+7)/8 > len(buff) {
		trace(2, "rejected message: counted string of length %d exceeds message length\n", n)
		return "", i, invalid("counted string exceeds message length")
	}
	b := make([]byte, n)
	getStr(buff, i, n, b)
	i += n * 8
	return string(b), i, nil
}

func decodeArpBase(buff []uint8) (StationArp, int) {
	var s StationArp
	i := 12
	s.StationID = int(getBitU(buff, i, 12))
	i += 12
	s.ITRFRealization = int(getBitU(buff, i, 6))
	i += 6
	s.GPSIndicator = getBitU(buff, i, 1) != 0
	i++
	s.GLOIndicator = getBitU(buff, i, 1) != 0
	i++
	s.GALIndicator = getBitU(buff, i, 1) != 0
	i++
	s.RefStationInd = getBitU(buff, i, 1) != 0
	i++
	s.ArpX = float64(getBits64(buff, i, 38)) * 0.0001
	i += 38
	s.OscillatorInd = getBitU(buff, i, 1) != 0
	i++
	i++ // reserved bit
	s.ArpY = float64(getBits64(buff, i, 38)) * 0.0001
	i += 38
	s.QuarterCycleInd = int(getBitU(buff, i, 2))
	i += 2
	s.ArpZ = float64(getBits64(buff, i, 38)) * 0.0001
	i += 38
	trace(4, "arp header: station=%d itrf=%d x=%.4f y=%.4f z=%.4f\n", s.StationID, s.ITRFRealization, s.ArpX, s.ArpY, s.ArpZ)
	return s, i
}

// Decode1005 decodes a reference station ARP message without antenna
// height.
func Decode1005(buff []uint8) (StationArp, error) {
	if err := checkMsgNum(buff, 1005); err != nil {
		return StationArp{}, err
	}
	s, _ := decodeArpBase(buff)
	return s, nil
}

// Decode1006 decodes a reference station ARP message with antenna
// height.
func Decode1006(buff []uint8) (StationArp, error) {
	if err := checkMsgNum(buff, 1006); err != nil {
		return StationArp{}, err
	}
	s, i := decodeArpBase(buff)
	h := getBitU(buff, i, 16)
	s.HasAntennaHeight = true
	s.AntennaHeight = float64(h) * 0.0001
	return s, nil
}

// Decode1007 decodes an antenna descriptor message.
func Decode1007(buff []uint8) (AntennaInfo, error) {
	if err := checkMsgNum(buff, 1007); err != nil {
		return AntennaInfo{}, err
	}
	var a AntennaInfo
	i := 12
	a.StationID = int(getBitU(buff, i, 12))
	i += 12
	trace(4, "antenna message: type=1007 station=%d\n", a.StationID)
	desc, i2, err := readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.AntDescriptor = desc
	i = i2
	a.AntSetupID = int(getBitU(buff, i, 8))
	return a, nil
}

// Decode1008 decodes an antenna descriptor and serial number message.
func Decode1008(buff []uint8) (AntennaInfo, error) {
	if err := checkMsgNum(buff, 1008); err != nil {
		return AntennaInfo{}, err
	}
	var a AntennaInfo
	i := 12
	a.StationID = int(getBitU(buff, i, 12))
	i += 12
	trace(4, "antenna message: type=1008 station=%d\n", a.StationID)
	desc, i2, err := readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.AntDescriptor = desc
	i = i2
	a.AntSetupID = int(getBitU(buff, i, 8))
	i += 8
	sn, i3, err := readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.AntSerialNum = sn
	_ = i3
	return a, nil
}

// Decode1033 decodes the full antenna and receiver descriptor message.
// Per §4.4 it zero-initializes its record before filling in the fields
// actually present.
func Decode1033(buff []uint8) (AntennaInfo, error) {
	if err := checkMsgNum(buff, 1033); err != nil {
		return AntennaInfo{}, err
	}
	a := AntennaInfo{}
	i := 12
	a.StationID = int(getBitU(buff, i, 12))
	i += 12
	trace(4, "antenna message: type=1033 station=%d\n", a.StationID)

	var err error
	a.AntDescriptor, i, err = readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.AntSetupID = int(getBitU(buff, i, 8))
	i += 8
	a.AntSerialNum, i, err = readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.RcvDescriptor, i, err = readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.RcvFirmware, i, err = readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	a.RcvSerialNum, i, err = readCountedString(buff, i)
	if err != nil {
		return AntennaInfo{}, err
	}
	return a, nil
}

// Decode1029 decodes a Unicode text string message. The payload is
// copied verbatim; RTCM does not mandate UTF-8 well-formedness and this
// decoder does not validate it.
func Decode1029(buff []uint8) (TextMessage, error) {
	if err := checkMsgNum(buff, 1029); err != nil {
		return TextMessage{}, err
	}
	var t TextMessage
	i := 12
	t.StationID = int(getBitU(buff, i, 12))
	i += 12
	t.MJD = int(getBitU(buff, i, 16))
	i += 16
	t.UTCSecOfDay = int(getBitU(buff, i, 17))
	i += 17
	t.UnicodeChars = int(getBitU(buff, i, 7))
	i += 7
	n := int(getBitU(buff, i, 8))
	i += 8
	trace(4, "text message: type=1029 station=%d mjd=%d chars=%d\n", t.StationID, t.MJD, t.UnicodeChars)
	if (i+n*8+7)/8 > len(buff) {
		trace(2, "rejected message: text payload of length %d exceeds message length\n", n)
		return TextMessage{}, invalid("text payload exceeds message length")
	}
	t.UTF8CodeUnits = n
	t.Text = make([]byte, n)
	getStr(buff, i, n, t.Text)
	return t, nil
}

// Decode1230 decodes the GLONASS code-phase bias message. Each of the
// four biases is present only when its bit is set in the 4-bit FDMA
// signal mask (DF422); absent biases are left at 0.0, scale 0.02 m per
// original_source/c/src/decode.c.
func Decode1230(buff []uint8) (CodePhaseBias, error) {
	if err := checkMsgNum(buff, 1230); err != nil {
		return CodePhaseBias{}, err
	}
	var c CodePhaseBias
	i := 12
	c.StationID = int(getBitU(buff, i, 12))
	i += 12
	c.BiasIndicator = getBitU(buff, i, 1) != 0
	i++
	i += 3 // reserved
	mask := uint8(getBitU(buff, i, 4))
	i += 4
	c.FDMASignalMask = mask
	trace(4, "bias message: type=1230 station=%d mask=%04b\n", c.StationID, mask)

	readBias := func() float64 {
		v := getBits(buff, i, 16)
		i += 16
		return float64(v) * 0.02
	}
	if mask&0x8 != 0 {
		c.L1CA = readBias()
	}
	if mask&0x4 != 0 {
		c.L1P = readBias()
	}
	if mask&0x2 != 0 {
		c.L2CA = readBias()
	}
	if mask&0x1 != 0 {
		c.L2P = readBias()
	}
	return c, nil
}
