// SPDX-License-Identifier: EPL-2.0

package audgrain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/formats/aiff"
	"github.com/ik5/audgrain/formats/mp3"
	"github.com/ik5/audgrain/formats/vorbis"
	"github.com/ik5/audgrain/formats/wav"
)

// DefaultRegistry returns a registry with every decoder in this module,
// keyed by the usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}

type loadSettings struct {
	sampleRate int
	mono       bool
	registry   *audio.Registry
}

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadSettings)

// WithSampleRate resamples the source to hz. Zero or less keeps the
// source rate.
func WithSampleRate(hz int) LoadOption {
	return func(s *loadSettings) { s.sampleRate = hz }
}

// WithMono averages all channels into one.
func WithMono() LoadOption {
	return func(s *loadSettings) { s.mono = true }
}

// WithRegistry picks decoders from reg instead of DefaultRegistry.
func WithRegistry(reg *audio.Registry) LoadOption {
	return func(s *loadSettings) {
		if reg != nil {
			s.registry = reg
		}
	}
}

func newLoadSettings(opts []LoadOption) loadSettings {
	var s loadSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Load reads src to the end into a Buffer and closes it. Mono folding runs
// before resampling so the resampler only filters one channel.
func Load(src audio.Source, opts ...LoadOption) (*audio.Buffer, error) {
	s := newLoadSettings(opts)

	var stream audio.Source = src
	if s.mono && stream.Channels() > 1 {
		stream = audio.NewMonoMixer(stream)
	}

	if s.sampleRate > 0 && s.sampleRate != stream.SampleRate() {
		r, err := audio.NewResampler(stream, s.sampleRate)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("loading source: %w", err)
		}
		stream = r
	}

	buf, err := audio.ReadAll(stream)
	if cerr := src.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing source: %w", cerr)
	}

	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	return buf, nil
}

// LoadFile decodes path with the decoder registered for its extension and
// passes the result through Load.
func LoadFile(path string, opts ...LoadOption) (*audio.Buffer, error) {
	s := newLoadSettings(opts)
	reg := s.registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	ext := filepath.Ext(path)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(reg.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	buf, err := Load(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buf, nil
}
