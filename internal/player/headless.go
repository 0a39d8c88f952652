// SPDX-License-Identifier: EPL-2.0

//go:build headless

package player

import (
	"errors"
	"time"
)

var ErrHeadless = errors.New("built without audio output")

type Output struct{}

func Open(*Stream, int, time.Duration) (*Output, error) { return nil, ErrHeadless }

func (*Output) Close() error { return nil }
