// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/internal/pcm"
	"github.com/ik5/audgrain/utils"
)

const headerSize = 44

// WriteWAV16 writes interleaved 16-bit PCM as a complete WAV file. w does
// not need to seek, so the sizes are computed up front.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannels
	}

	numChannels := uint16(channels)
	bitsPerSample := uint16(16)
	blockAlign := numChannels * bitsPerSample / 8
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], headerSize-8+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// Writer streams float samples into a WAV file through go-audio's encoder.
// The header is patched with the final sizes on Close, so the destination
// has to seek.
type Writer struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	bitDepth int
	channels int
}

// NewWriter starts a WAV file of the given layout. bitDepth is 16, 24 or 32.
func NewWriter(ws io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	if bitDepth == 8 || !pcm.SupportedDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Writer{
		enc:      gowav.NewEncoder(ws, sampleRate, bitDepth, channels, formatPCM),
		bitDepth: bitDepth,
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write appends interleaved samples, clipping them to [-1, 1].
func (w *Writer) Write(samples []float32) error {
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("writing wav: %d samples for %d channels: %w",
			len(samples), w.channels, audio.ErrInvalidDstSize)
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, x := range samples {
		w.buf.Data[i] = utils.Float32ToPCM(x, w.bitDepth)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}

	return nil
}

// Close finalizes the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
