package sofadb

import (
	"path/filepath"
	"strings"
)

// Codec loads a database file into memory and saves it back out. The
// acoustics formats themselves live in external libraries; a codec is the
// boundary the runner round-trips files through. Warnings report
// recoverable oddities found while the file was otherwise processable.
type Codec interface {
	Name() string
	Load(path string) (obj any, warnings []string, err error)
	Save(path string, obj any) (warnings []string, err error)
}

// CodecSet maps file extensions to codecs.
type CodecSet struct {
	byExt map[string]Codec
}

func NewCodecSet() *CodecSet {
	return &CodecSet{byExt: make(map[string]Codec)}
}

// Register binds a codec to an extension, replacing any previous binding.
// The extension is matched case-insensitively and may be given with or
// without the leading dot.
func (s *CodecSet) Register(ext string, c Codec) {
	s.byExt[normalizeExt(ext)] = c
}

// For returns the codec registered for the path's extension, or nil.
func (s *CodecSet) For(path string) Codec {
	return s.byExt[normalizeExt(filepath.Ext(path))]
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DefaultCodecs returns a set with the codecs this package ships: WAV under
// .wav and AIFF under .aiff and .aif. A SOFA codec is not included; register
// one to have .sofa files checked beyond the download.
func DefaultCodecs() *CodecSet {
	s := NewCodecSet()
	s.Register(".wav", wavCodec{})
	s.Register(".aiff", aiffCodec{})
	s.Register(".aif", aiffCodec{})
	return s
}
