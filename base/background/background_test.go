// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package background

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJoinAll(t *testing.T) {
	var tr Tracker
	var sentinel atomic.Int32
	for range 5 {
		tr.Spawn(func() {
			time.Sleep(20 * time.Millisecond)
			sentinel.Add(1)
		})
	}
	assert.Equal(t, 5, tr.Len())
	assert.NoError(t, tr.JoinAll())
	assert.Equal(t, int32(5), sentinel.Load())
	assert.Equal(t, 0, tr.Len())
}

func TestDoneAndClean(t *testing.T) {
	var tr Tracker
	release := make(chan struct{})
	slow := tr.Spawn(func() { <-release })
	fast := tr.Spawn(func() {})

	assert.Eventually(t, fast.Done, time.Second, time.Millisecond)
	assert.False(t, slow.Done())
	tr.Clean()
	assert.Equal(t, 1, tr.Len())

	close(release)
	assert.NoError(t, tr.JoinAll())
	assert.True(t, slow.Done())
}

func TestPanicRecovered(t *testing.T) {
	var tr Tracker
	tk := tr.Spawn(func() { panic("boom") })
	assert.Error(t, tr.JoinAll())
	assert.True(t, tk.Done())
}
