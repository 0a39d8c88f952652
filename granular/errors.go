// SPDX-License-Identifier: EPL-2.0

package granular

import "errors"

var ErrQueueFull = errors.New("granular: command queue is full")
