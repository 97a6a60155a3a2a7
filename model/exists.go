package model

import (
	"os"

	"github.com/xh3b4sd/tracer"
)

func exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, tracer.Mask(err)
	}

	return true, nil
}
