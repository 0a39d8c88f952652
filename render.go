// SPDX-License-Identifier: EPL-2.0

package audgrain

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audgrain/formats/wav"
	"github.com/ik5/audgrain/granular"
	"github.com/ik5/audgrain/utils"
)

// blockFrames is how many frames Render and RenderWAV produce per block.
// Queued controller commands apply between blocks.
const blockFrames = 512

// Render runs cloud for frames frames and returns the interleaved output.
func Render(cloud *granular.Cloud, frames int) ([]float32, error) {
	channels := cloud.Channels()
	out := make([]float32, max(frames, 0)*channels)

	for off := 0; off < len(out); off += blockFrames * channels {
		end := min(off+blockFrames*channels, len(out))
		if _, err := cloud.Render(out[off:end]); err != nil {
			return nil, fmt.Errorf("rendering: %w", err)
		}
	}

	return out, nil
}

// RenderWAV renders frames frames of cloud into a WAV file at the cloud's
// source rate. Pending commands are applied first, so a source posted
// through a Controller counts.
func RenderWAV(ws io.WriteSeeker, cloud *granular.Cloud, frames, bitDepth int) error {
	cloud.Drain()

	if !cloud.HasValidSource() {
		return ErrNoSource
	}

	w, err := wav.NewWriter(ws, int(math.Round(cloud.SampleRate())), cloud.Channels(), bitDepth)
	if err != nil {
		return fmt.Errorf("rendering wav: %w", err)
	}

	block := make([]float32, blockFrames*cloud.Channels())
	for left := max(frames, 0); left > 0; left -= blockFrames {
		n := min(left, blockFrames) * cloud.Channels()
		if _, err := cloud.Render(block[:n]); err != nil {
			return fmt.Errorf("rendering wav: %w", err)
		}

		if err := w.Write(block[:n]); err != nil {
			return fmt.Errorf("rendering wav: %w", err)
		}
	}

	return w.Close()
}

// RenderWAV16 renders frames frames of cloud as 16-bit PCM to a writer that
// cannot seek, such as a pipe. The whole render is held in memory.
func RenderWAV16(w io.Writer, cloud *granular.Cloud, frames int) error {
	cloud.Drain()

	if !cloud.HasValidSource() {
		return ErrNoSource
	}

	out, err := Render(cloud, frames)
	if err != nil {
		return err
	}

	pcm := make([]int16, len(out))
	for i, x := range out {
		pcm[i] = utils.Float32ToInt16(x)
	}

	if err := wav.WriteWAV16(w, int(math.Round(cloud.SampleRate())), cloud.Channels(), pcm); err != nil {
		return fmt.Errorf("rendering wav: %w", err)
	}

	return nil
}
