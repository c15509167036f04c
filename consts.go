package rtcm3

// Physical and protocol constants exported for use by collaborating
// packages (e.g. an RTK positioning engine consuming decoded records).
const (
	GPS_C = 299792458.0 // speed of light (m/s)

	GPS_L1_HZ = 1575.42e6
	GPS_L2_HZ = 1227.60e6

	GLO_L1_HZ       = 1602.0e6
	GLO_L2_HZ       = 1246.0e6
	GLO_L1_DELTA_HZ = 0.5625e6
	GLO_L2_DELTA_HZ = 0.4375e6

	PRUNIT_GPS = 299792.458 // rtcm ver.3 unit of GPS pseudorange (m)
	PRUNIT_GLO = 599584.916 // rtcm ver.3 unit of GLONASS pseudorange (m)

	MT1012_GLO_FCN_OFFSET = 7
	MT1012_GLO_MAX_FCN    = 13
	MSM_GLO_FCN_UNKNOWN   = 255

	RTCM_MAX_TOW_MS     = 604799999
	RTCM_GLO_MAX_TOW_MS = 86400999

	MSM_MAX_CELLS            = 64
	MSM_SATELLITE_MASK_SIZE  = 64
	MSM_SIGNAL_MASK_SIZE     = 32
	bdsToGpsSecondOffsetMs   = 14000 // BDT -> GPST leap offset used for TOW unwrap
	bdsSign30BitWrapAtCycles = 1 << 30
)

// range/scale constants used throughout the legacy and MSM decoders,
// named the way the teacher's rtcm3.go names its powers-of-two scale
// factors (P2_10, P2_24, ...).
const (
	rangeMs = GPS_C * 0.001 // one light-millisecond, in meters

	p2_10 = 1.0 / 1024        // 2^-10
	p2_24 = 1.0 / 16777216    // 2^-24
	p2_29 = 1.0 / 536870912   // 2^-29
	p2_31 = 1.0 / 2147483648  // 2^-31
	p2_4  = 1.0 / 16          // 2^-4
)

// invalid-value sentinels, named per spec.md §4.2. Each marks a field
// that RTCM defines as "not available"; decoders clear the matching
// validity flag and zero the numeric output rather than propagating the
// sentinel.
const (
	prL1Invalid   = 0xFFFFFF // 24-bit all-ones unsigned pseudorange sentinel
	cpInvalid     = -524288  // 20-bit sign-extended sentinel (0xFFF80000 truncated to int32)
	prL2DiffInval = -8192    // 14-bit sentinel (0xFFFFE000 truncated to int32)
	msmRoughRangeInvalid = 0xFF
	msmRoughRateInvalid  = -8192
	msmPrInvalid         = -16384
	msmPrExtInvalid      = -524288
	msmCpInvalid         = -2097152
	msmCpExtInvalid      = -8388608
	msmDopInvalid        = -16384
)
