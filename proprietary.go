package rtcm3

// Decode4062 decodes the Swift Navigation proprietary message envelope.
// The 4 reserved bits following the message number must be zero; a
// nonzero value marks a framing the decoder does not understand.
func Decode4062(buff []uint8) (ProprietaryMessage, error) {
	if err := checkMsgNum(buff, 4062); err != nil {
		return ProprietaryMessage{}, err
	}
	i := 12
	reserved := getBitU(buff, i, 4)
	i += 4
	if reserved != 0 {
		return ProprietaryMessage{}, invalid("nonzero reserved bits in 4062 envelope")
	}

	var p ProprietaryMessage
	p.MsgType = uint16(getBitU(buff, i, 16))
	i += 16
	p.SenderID = uint16(getBitU(buff, i, 16))
	i += 16
	n := int(getBitU(buff, i, 8))
	i += 8
	if (i+n*8+7)/8 > len(buff) {
		return ProprietaryMessage{}, invalid("payload exceeds message length")
	}
	p.Data = make([]byte, n)
	getStr(buff, i, n, p.Data)
	return p, nil
}
