// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrder(t *testing.T) {
	q := New[int]()
	_, ok := q.Next()
	assert.False(t, ok)

	for i := range 10 {
		q.Send(i)
	}
	assert.Equal(t, uint64(10), q.Len())
	for i := range 10 {
		v, ok := q.Next()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, uint64(0), q.Len())
}

func TestQueueConcurrentSend(t *testing.T) {
	q := New[int]()
	const senders, each = 8, 500
	var wg sync.WaitGroup
	for s := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				q.Send(s*each + i)
			}
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	last := make([]int, senders)
	for i := range last {
		last[i] = -1
	}
	for {
		v, ok := q.Next()
		if !ok {
			break
		}
		seen[v] = true
		s := v / each
		assert.Greater(t, v, last[s], "values from one sender must stay ordered")
		last[s] = v
	}
	assert.Len(t, seen, senders*each)
}
