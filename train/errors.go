package train

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var predictionMismatchError = &tracer.Error{
	Kind: "predictionMismatchError",
}

// IsPredictionMismatch reports whether the bags of a profile produced
// prediction files of different lengths.
func IsPredictionMismatch(err error) bool {
	return errors.Is(err, predictionMismatchError)
}
