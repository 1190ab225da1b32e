// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

// NumReceivers returns the number of open context and window
// event receivers.
func (c *Context) NumReceivers() int {
	n := len(c.receivers)
	for _, w := range c.windows {
		n += len(w.receivers)
	}
	return n
}
