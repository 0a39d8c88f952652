// SPDX-License-Identifier: EPL-2.0

package audgrain

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoSource          = errors.New("cloud has no audio source")
)
