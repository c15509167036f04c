package rtcm3

import "github.com/go-playground/validator/v10"

// DecoderOptions configures the optional strictness checks a caller can
// request around the stateless decode functions, validated with
// struct-tag rules the way de-bkg-gognss's pkg/site validates station
// records.
type DecoderOptions struct {
	// StationIDFilter, when non-empty, restricts decoding to these
	// reference station IDs; DecodeWithOptions reports messages from any
	// other station as ErrMessageTypeMismatch (Decode and the typed
	// decoders themselves never filter).
	StationIDFilter []int `validate:"omitempty,dive,min=0,max=4095"`

	// MinTraceLevel mirrors SetTraceLevel for callers that build
	// DecoderOptions from external configuration.
	MinTraceLevel int `validate:"gte=0,lte=5"`
}

var optionsValidator = validator.New()

// Validate checks DecoderOptions against its struct tags and returns the
// first validation failure, if any.
func (o DecoderOptions) Validate() error {
	return optionsValidator.Struct(o)
}
