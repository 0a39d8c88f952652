// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrNoChannels        = errors.New("at least one channel is required")
	ErrChannelLength     = errors.New("channels must have equal length")
	ErrNoProgress        = errors.New("source returned no samples and no error")
)
