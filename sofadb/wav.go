package sofadb

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

type wavCodec struct{}

func (wavCodec) Name() string { return "wav" }

func (wavCodec) Load(path string) (any, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open wav")
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, nil, errors.Errorf("%s: not a valid wav file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "decode wav")
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(d.BitDepth)
	}
	return buf, pcmWarnings(buf), nil
}

func (wavCodec) Save(path string, obj any) ([]string, error) {
	buf, ok := obj.(*audio.IntBuffer)
	if !ok {
		return nil, errors.Errorf("wav codec cannot save %T", obj)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create wav")
	}
	e := wav.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, 1)
	if err := e.Write(buf); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "encode wav")
	}
	if err := e.Close(); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "finalize wav")
	}
	return pcmWarnings(buf), f.Close()
}

// pcmWarnings flags oddities that survive a round trip but usually mean the
// source file is broken.
func pcmWarnings(buf *audio.IntBuffer) (warnings []string) {
	if len(buf.Data) == 0 {
		warnings = append(warnings, "no PCM frames")
	}
	switch buf.SourceBitDepth {
	case 8, 16, 24, 32:
	default:
		warnings = append(warnings, fmt.Sprintf("unusual bit depth %d", buf.SourceBitDepth))
	}
	return
}
