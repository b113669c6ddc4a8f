package sofadb

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// Bytes is a byte count that parses human readable quantities like 100GB.
// It satisfies pflag.Value so it can back a command line flag directly.
type Bytes int64

var _ pflag.Value = (*Bytes)(nil)

func (me *Bytes) Set(s string) error {
	ui64, err := humanize.ParseBytes(s)
	if err != nil {
		return err
	}
	*me = Bytes(ui64)
	return nil
}

func (me Bytes) String() string {
	return humanize.Bytes(uint64(me))
}

func (Bytes) Type() string {
	return "bytes"
}

func (me Bytes) Int64() int64 {
	return int64(me)
}
