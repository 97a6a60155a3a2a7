package clickrank

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var EmptyPartitionError = &tracer.Error{
	Kind: "EmptyPartitionError",
}

func IsEmptyPartition(err error) bool {
	return errors.Is(err, EmptyPartitionError)
}

var InvalidInputError = &tracer.Error{
	Kind: "InvalidInputError",
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, InvalidInputError)
}

var MissingJoinKeyError = &tracer.Error{
	Kind: "MissingJoinKeyError",
}

func IsMissingJoinKey(err error) bool {
	return errors.Is(err, MissingJoinKeyError)
}
