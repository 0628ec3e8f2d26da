// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package grid implements the per-slot resource bookkeeping shared by the
// scheduler and its SI sub-scheduler: PRB occupancy and PDCCH (CCE) budget
// for a single cell, single slot. It has no notion of UEs or messages, only
// "is this PRB/CCE range free" — the same separation the source keeps
// between cell_slot_resource_allocator and its callers.
package grid

import "github.com/omec-project/gnb-du/ransched/prb"

// ResourceGrid tracks PRB and PDCCH-candidate occupancy for one cell in one
// slot. Reset() is called once per slot before scheduling begins.
type ResourceGrid struct {
	totalPRBs uint16
	usedPRBs  []bool

	totalCCEs uint8
	usedCCEs  uint8
}

// New builds a ResourceGrid for a BWP of totalPRBs PRBs and a PDCCH common
// search space budget of totalCCEs control channel elements.
func New(totalPRBs uint16, totalCCEs uint8) *ResourceGrid {
	return &ResourceGrid{
		totalPRBs: totalPRBs,
		usedPRBs:  make([]bool, totalPRBs),
		totalCCEs: totalCCEs,
	}
}

// Reset clears all PRB and CCE usage, ready for the next slot.
func (g *ResourceGrid) Reset() {
	for i := range g.usedPRBs {
		g.usedPRBs[i] = false
	}
	g.usedCCEs = 0
}

// FindEmptyInterval returns the lowest-indexed contiguous run of length free
// PRBs, or ok=false if none exists (mirrors rb_helper::find_empty_interval_of_length).
func (g *ResourceGrid) FindEmptyInterval(length uint16) (iv prb.Interval, ok bool) {
	if length == 0 || length > g.totalPRBs {
		return prb.Interval{}, false
	}
	run := uint16(0)
	for i := uint16(0); i < g.totalPRBs; i++ {
		if g.usedPRBs[i] {
			run = 0
			continue
		}
		run++
		if run == length {
			start := i - length + 1
			return prb.Interval{Start: start, Stop: start + length}, true
		}
	}
	return prb.Interval{}, false
}

// MarkUsed fills the PRBs in iv as used.
func (g *ResourceGrid) MarkUsed(iv prb.Interval) {
	for i := iv.Start; i < iv.Stop && i < g.totalPRBs; i++ {
		g.usedPRBs[i] = true
	}
}

// FindScatteredPRBs collects the lowest-indexed count free PRBs, in whatever
// non-contiguous pattern the grid currently has available. Used as the
// fallback when FindEmptyInterval cannot find a single contiguous run,
// mirroring the source's use of a bitmap allocation once the grid has
// fragmented past the point interval search can serve a UE.
func (g *ResourceGrid) FindScatteredPRBs(count uint16) (indices []uint16, ok bool) {
	if count == 0 || count > g.totalPRBs {
		return nil, false
	}
	for i := uint16(0); i < g.totalPRBs && uint16(len(indices)) < count; i++ {
		if !g.usedPRBs[i] {
			indices = append(indices, i)
		}
	}
	if uint16(len(indices)) < count {
		return nil, false
	}
	return indices, true
}

// MarkUsedIndices fills the given PRB indices as used, the bitmap-grant
// counterpart to MarkUsed's interval-grant marking.
func (g *ResourceGrid) MarkUsedIndices(indices []uint16) {
	for _, i := range indices {
		if i < g.totalPRBs {
			g.usedPRBs[i] = true
		}
	}
}

// TryAllocPDCCHCandidate reserves aggregationLevel CCEs if the budget
// allows, and reports success. Reservation must happen before PDSCH PRB
// allocation is committed, per spec.md §4.2(b); callers roll back with
// FreePDCCHCandidate if the subsequent PDSCH step fails.
func (g *ResourceGrid) TryAllocPDCCHCandidate(aggregationLevel uint8) bool {
	if uint16(g.usedCCEs)+uint16(aggregationLevel) > uint16(g.totalCCEs) {
		return false
	}
	g.usedCCEs += aggregationLevel
	return true
}

// FreePDCCHCandidate undoes a TryAllocPDCCHCandidate reservation of the same
// aggregationLevel.
func (g *ResourceGrid) FreePDCCHCandidate(aggregationLevel uint8) {
	if aggregationLevel > g.usedCCEs {
		g.usedCCEs = 0
		return
	}
	g.usedCCEs -= aggregationLevel
}

// TotalPRBs returns the BWP width in PRBs.
func (g *ResourceGrid) TotalPRBs() uint16 { return g.totalPRBs }
