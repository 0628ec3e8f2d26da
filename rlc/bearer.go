// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package rlc defines the RLC bearer interface the MAC DL pipeline pulls Tx
// SDUs from (spec.md §6). RLC PDU segmentation/ARQ itself is out of scope;
// this package fixes the contract and provides an in-memory test double.
package rlc

// TxBearer is the Tx-side interface a MAC DL grant pulls SDUs from.
type TxBearer interface {
	// OnNewTxSDU returns up to nofBytes of concatenated RLC PDU bytes, or an
	// empty slice if nothing is available right now.
	OnNewTxSDU(nofBytes uint32) []byte
	// OnBufferStateUpdate returns the current Tx backlog, in bytes.
	OnBufferStateUpdate() uint32
}

// FakeBearer is a TxBearer test double backed by an in-memory queue of SDUs,
// used by mac/ tests to exercise the SDU-pull loop without a real RLC stack.
type FakeBearer struct {
	pending [][]byte
	backlog uint32
}

// NewFakeBearer builds a FakeBearer with sdus queued for delivery in order.
func NewFakeBearer(sdus ...[]byte) *FakeBearer {
	b := &FakeBearer{}
	for _, s := range sdus {
		b.Enqueue(s)
	}
	return b
}

// Enqueue appends an SDU to the pending queue and updates the backlog.
func (b *FakeBearer) Enqueue(sdu []byte) {
	b.pending = append(b.pending, sdu)
	b.backlog += uint32(len(sdu))
}

// OnNewTxSDU pops and returns the next pending SDU if it fits within
// nofBytes; otherwise returns nil, matching the "nothing now" contract.
func (b *FakeBearer) OnNewTxSDU(nofBytes uint32) []byte {
	if len(b.pending) == 0 {
		return nil
	}
	sdu := b.pending[0]
	if uint32(len(sdu)) > nofBytes {
		return nil
	}
	b.pending = b.pending[1:]
	b.backlog -= uint32(len(sdu))
	return sdu
}

// OnBufferStateUpdate returns the current backlog in bytes.
func (b *FakeBearer) OnBufferStateUpdate() uint32 {
	return b.backlog
}
