// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package harq implements the Rx soft-buffer pool (C1): a bounded set of
// HARQ combining buffers keyed by a caller-supplied identifier, with
// slot-based expiry, grounded on the reference rx_softbuffer_pool_impl.
package harq

import (
	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/ransched/slot"
)

// ID identifies a logical HARQ process: two reservations with an equal ID
// refer to the same physical buffer.
type ID struct {
	UEIndex          uint32
	HARQProcessID    uint8
	NewDataIndicator bool
}

// Buffer is one entry of the pool: either free, or reserved for an ID until
// an expiry slot.
type Buffer struct {
	reserved      bool
	id            ID
	nofCodeblocks uint32
	expiry        slot.Point
}

// ID returns the identifier this buffer is currently reserved for. Only
// meaningful while Reserved() is true.
func (b *Buffer) ID() ID { return b.id }

// Reserved reports whether the buffer currently holds a live reservation.
func (b *Buffer) Reserved() bool { return b.reserved }

// NofCodeblocks returns the codeblock count of the current reservation.
func (b *Buffer) NofCodeblocks() uint32 { return b.nofCodeblocks }

// Pool is a fixed-size collection of soft-buffers, provisioned for peak UE
// load. Not safe for concurrent use: callers own single-threaded access from
// the uplink cell executor (spec.md §5).
type Pool struct {
	expireTimeoutSlots uint32
	buffers            []Buffer
}

// New builds a Pool of nofBuffers entries, each reservation surviving
// expireTimeoutSlots slots without a refresh.
func New(nofBuffers int, expireTimeoutSlots uint32) *Pool {
	return &Pool{
		expireTimeoutSlots: expireTimeoutSlots,
		buffers:            make([]Buffer, nofBuffers),
	}
}

// Reserve returns the buffer for id, refreshing its expiry if id already has
// a live reservation, or claiming the lowest-index free entry otherwise. A
// pool with no free entry and no matching id is a fatal configuration error:
// the pool is provisioned for peak UE load and running out is a bug, not a
// runtime condition (spec.md §7 tier 1).
func (p *Pool) Reserve(sl slot.Point, id ID, nofCodeblocks uint32) *Buffer {
	expiry := sl.Add(int(p.expireTimeoutSlots))

	for i := range p.buffers {
		if p.buffers[i].reserved && p.buffers[i].id == id {
			p.buffers[i].expiry = expiry
			p.buffers[i].nofCodeblocks = nofCodeblocks
			return &p.buffers[i]
		}
	}

	for i := range p.buffers {
		if !p.buffers[i].reserved {
			p.buffers[i].reserved = true
			p.buffers[i].id = id
			p.buffers[i].expiry = expiry
			p.buffers[i].nofCodeblocks = nofCodeblocks
			return &p.buffers[i]
		}
	}

	logger.PoolLog.Panicw("failed to reserve softbuffer: pool exhausted", "pool_size", len(p.buffers))
	return nil
}

// Free releases the entry matching id, if any. No-op otherwise.
func (p *Pool) Free(id ID) {
	for i := range p.buffers {
		if p.buffers[i].reserved && p.buffers[i].id == id {
			p.buffers[i] = Buffer{}
			return
		}
	}
}

// RunSlot marks every entry whose expiry is at or before sl as free.
// Idempotent: calling twice for the same sl has the same effect as once,
// since a freed entry stays free.
func (p *Pool) RunSlot(sl slot.Point) {
	for i := range p.buffers {
		if p.buffers[i].reserved && !sl.Before(p.buffers[i].expiry) {
			p.buffers[i] = Buffer{}
		}
	}
}

// Len returns the number of provisioned entries.
func (p *Pool) Len() int { return len(p.buffers) }
