// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"sync"
	"sync/atomic"
)

// throttle bounds the number of concurrently running goroutines and
// captures the first non-nil error reported by any of them. It backs
// the LD matrix row computation (LDMatrix); ParallelDriver.Run starts
// one goroutine per chunk and joins them with its own WaitGroup.
type throttle struct {
	Max       int
	wg        sync.WaitGroup
	ch        chan bool
	err       atomic.Value
	setupOnce sync.Once
	errorOnce sync.Once
}

func (t *throttle) Acquire() {
	t.setupOnce.Do(func() { t.ch = make(chan bool, t.Max) })
	t.wg.Add(1)
	t.ch <- true
}

func (t *throttle) Release() {
	t.wg.Done()
	<-t.ch
}

func (t *throttle) Report(err error) {
	if err != nil {
		t.errorOnce.Do(func() { t.err.Store(err) })
	}
}

func (t *throttle) Err() error {
	err, _ := t.err.Load().(error)
	return err
}

// Go runs f in a new goroutine, acquiring a slot first and releasing
// it when f returns. f's error, if any, is captured by Report.
func (t *throttle) Go(f func() error) {
	t.Acquire()
	go func() {
		defer t.Release()
		t.Report(f())
	}()
}

func (t *throttle) Wait() error {
	t.wg.Wait()
	return t.Err()
}
