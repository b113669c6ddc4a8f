package sofadb

import (
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/pkg/errors"
)

type aiffCodec struct{}

func (aiffCodec) Name() string { return "aiff" }

func (aiffCodec) Load(path string) (any, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open aiff")
	}
	defer f.Close()
	d := aiff.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, nil, errors.Errorf("%s: not a valid aiff file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "decode aiff")
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(d.BitDepth)
	}
	return buf, pcmWarnings(buf), nil
}

func (aiffCodec) Save(path string, obj any) ([]string, error) {
	buf, ok := obj.(*audio.IntBuffer)
	if !ok {
		return nil, errors.Errorf("aiff codec cannot save %T", obj)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create aiff")
	}
	e := aiff.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)
	if err := e.Write(buf); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "encode aiff")
	}
	if err := e.Close(); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "finalize aiff")
	}
	return pcmWarnings(buf), f.Close()
}
