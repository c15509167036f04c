package rtcm3

// Decode is a convenience dispatcher that reads the leading 12-bit
// message number and calls the matching typed decoder, returning one of
// ObsMessage, MsmMessage, StationArp, AntennaInfo, TextMessage,
// CodePhaseBias or ProprietaryMessage as an interface{}. Callers who
// know the message type in advance should call the typed decoder
// directly; Decode exists for demultiplexing a mixed stream, e.g.:
//
//	v, err := rtcm3.Decode(buff)
//	switch m := v.(type) {
//	case rtcm3.ObsMessage:
//	case rtcm3.MsmMessage:
//	}
func Decode(buff []uint8) (interface{}, error) {
	if len(buff) < 2 {
		return nil, invalid("message too short to contain a message number")
	}
	switch readMsgNum(buff) {
	case 1001:
		return Decode1001(buff)
	case 1002:
		return Decode1002(buff)
	case 1003:
		return Decode1003(buff)
	case 1004:
		return Decode1004(buff)
	case 1005:
		return Decode1005(buff)
	case 1006:
		return Decode1006(buff)
	case 1007:
		return Decode1007(buff)
	case 1008:
		return Decode1008(buff)
	case 1010:
		return Decode1010(buff)
	case 1012:
		return Decode1012(buff)
	case 1029:
		return Decode1029(buff)
	case 1033:
		return Decode1033(buff)
	case 1230:
		return Decode1230(buff)
	case 4062:
		return Decode4062(buff)
	}

	if con, fam := constellationFromMsgNum(readMsgNum(buff)); con != ConstellationInvalid {
		switch fam {
		case 4:
			return DecodeMSM4(buff)
		case 5:
			return DecodeMSM5(buff)
		case 6:
			return DecodeMSM6(buff)
		case 7:
			return DecodeMSM7(buff)
		}
	}

	trace(2, "unsupported message number %d\n", readMsgNum(buff))
	return nil, mismatch("unsupported message number")
}

// messageStationID extracts the reference station ID carried by a decoded
// message, for callers that filter a mixed stream by station. Proprietary
// messages carry no RTCM station ID; ok is false for those.
func messageStationID(v interface{}) (id int, ok bool) {
	switch m := v.(type) {
	case ObsMessage:
		return m.Header.StationID, true
	case MsmMessage:
		return m.Header.StationID, true
	case StationArp:
		return m.StationID, true
	case AntennaInfo:
		return m.StationID, true
	case TextMessage:
		return m.StationID, true
	case CodePhaseBias:
		return m.StationID, true
	default:
		return 0, false
	}
}

// DecodeWithOptions wraps Decode with the station filtering and trace-level
// configuration described by DecoderOptions, generalizing the teacher's
// ad hoc -STA=nnnn CLI option into a validated struct any caller can build
// from configuration rather than a raw string. Options are validated on
// every call rather than once at construction time, since DecoderOptions
// is an ordinary struct callers are free to mutate between calls.
func DecodeWithOptions(buff []uint8, opts DecoderOptions) (interface{}, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.MinTraceLevel > 0 {
		SetTraceLevel(opts.MinTraceLevel)
	}
	v, err := Decode(buff)
	if err != nil {
		return nil, err
	}
	if len(opts.StationIDFilter) == 0 {
		return v, nil
	}
	id, ok := messageStationID(v)
	if !ok {
		return v, nil
	}
	for _, want := range opts.StationIDFilter {
		if id == want {
			return v, nil
		}
	}
	trace(2, "rejected message: station %d not in filter\n", id)
	return nil, mismatch("station ID not in filter")
}
