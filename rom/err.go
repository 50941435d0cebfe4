package rom

import (
	"errors"

	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

var (
	ErrRomEmpty = errors.New(f("rom empty"))
	ErrRomSize  = errors.New(f("rom too large"))
)
