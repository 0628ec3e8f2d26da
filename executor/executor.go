// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package executor implements the cooperative, single-threaded task queue
// that every layer of the DU pipeline is bound to: one pinned goroutine per
// executor, tasks run serially in FIFO order, submission never blocks the
// caller. This is the concurrency primitive spec.md §5 calls a "cooperative
// executor" (control executor, cell executor, tunnel executor all share this
// shape).
package executor

import (
	"sync"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/util"
	"go.uber.org/zap"
)

// Task is a unit of work posted to an Executor.
type Task func()

// Executor runs Tasks serially, in submission order, on a single goroutine.
type Executor struct {
	log     *zap.SugaredLogger
	tasks   chan Task
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New starts an Executor backed by a queue of the given capacity. A full
// queue causes Execute/Defer to return false rather than block.
func New(name string, queueLen int) *Executor {
	e := &Executor{
		log:     logger.UtilLog.With("executor", name),
		tasks:   make(chan Task, queueLen),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Executor) run() {
	defer util.RecoverWithLog(e.log)
	defer close(e.stopped)
	for {
		select {
		case t := <-e.tasks:
			e.runTask(t)
		case <-e.stop:
			// Drain whatever is already queued before exiting, so a stop
			// racing with in-flight submissions never silently drops work
			// that was already accepted.
			for {
				select {
				case t := <-e.tasks:
					e.runTask(t)
				default:
					return
				}
			}
		}
	}
}

func (e *Executor) runTask(t Task) {
	defer util.RecoverWithLog(e.log)
	t()
}

// Execute submits fn to run on the executor's goroutine. Returns false,
// without running fn, if the queue is full.
func (e *Executor) Execute(fn Task) bool {
	select {
	case e.tasks <- fn:
		return true
	default:
		return false
	}
}

// Defer is an alias for Execute: submission is always asynchronous, there is
// no "run inline if already on this executor" fast path (matching the
// source's execute()/defer() distinction being about semantics, not this
// queue's mechanics).
func (e *Executor) Defer(fn Task) bool {
	return e.Execute(fn)
}

// Stop signals the run loop to drain and exit. It does not block; callers
// that need to wait for drain completion should read Stopped().
func (e *Executor) Stop() {
	e.once.Do(func() { close(e.stop) })
}

// Stopped returns a channel closed once the run loop has exited.
func (e *Executor) Stopped() <-chan struct{} {
	return e.stopped
}
