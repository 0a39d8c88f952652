// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/internal/pcm"
)

// Decoder reads uncompressed AIFF files through go-audio. Inputs that
// cannot seek are buffered in memory first.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("decoding aiff: %w", err)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	src, err := pcm.NewSource(dec, dec.Format(), int(dec.BitDepth))
	switch {
	case errors.Is(err, pcm.ErrUnsupportedDepth):
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return src, nil
}
