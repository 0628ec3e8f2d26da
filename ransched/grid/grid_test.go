// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package grid

import (
	"testing"

	"github.com/omec-project/gnb-du/ransched/prb"
)

func TestFindEmptyIntervalLowestIndex(t *testing.T) {
	g := New(20, 8)
	iv, ok := g.FindEmptyInterval(5)
	if !ok || iv.Start != 0 || iv.Stop != 5 {
		t.Fatalf("expected [0,5), got %+v ok=%v", iv, ok)
	}
}

func TestFindEmptyIntervalSkipsUsed(t *testing.T) {
	g := New(20, 8)
	g.MarkUsed(iv(0, 5))
	found, ok := g.FindEmptyInterval(5)
	if !ok || found.Start != 5 {
		t.Fatalf("expected interval starting at 5, got %+v", found)
	}
}

func TestFindEmptyIntervalInsufficientSpace(t *testing.T) {
	g := New(4, 8)
	g.MarkUsed(iv(0, 3))
	if _, ok := g.FindEmptyInterval(2); ok {
		t.Fatalf("expected allocation failure")
	}
}

func TestPDCCHBudgetAndRollback(t *testing.T) {
	g := New(20, 4)
	if !g.TryAllocPDCCHCandidate(4) {
		t.Fatalf("expected first allocation of full budget to succeed")
	}
	if g.TryAllocPDCCHCandidate(1) {
		t.Fatalf("expected allocation to fail once budget exhausted")
	}
	g.FreePDCCHCandidate(4)
	if !g.TryAllocPDCCHCandidate(2) {
		t.Fatalf("expected allocation to succeed after rollback")
	}
}

func TestResetClearsUsage(t *testing.T) {
	g := New(10, 4)
	g.MarkUsed(iv(0, 10))
	g.TryAllocPDCCHCandidate(4)
	g.Reset()
	if _, ok := g.FindEmptyInterval(10); !ok {
		t.Fatalf("expected full grid free after reset")
	}
	if !g.TryAllocPDCCHCandidate(4) {
		t.Fatalf("expected full CCE budget after reset")
	}
}

func TestFindScatteredPRBsCollectsLowestFree(t *testing.T) {
	g := New(10, 4)
	for i := uint16(1); i < 10; i += 2 {
		g.MarkUsed(iv(i, i+1))
	}
	indices, ok := g.FindScatteredPRBs(3)
	if !ok {
		t.Fatalf("expected enough scattered PRBs")
	}
	want := []uint16{0, 2, 4}
	if len(indices) != len(want) {
		t.Fatalf("expected %v, got %v", want, indices)
	}
	for i, idx := range indices {
		if idx != want[i] {
			t.Fatalf("expected %v, got %v", want, indices)
		}
	}
}

func TestFindScatteredPRBsInsufficientSpace(t *testing.T) {
	g := New(4, 4)
	g.MarkUsed(iv(0, 3))
	if _, ok := g.FindScatteredPRBs(2); ok {
		t.Fatalf("expected allocation failure with only one PRB free")
	}
}

func TestMarkUsedIndicesBlocksFutureAllocation(t *testing.T) {
	g := New(4, 4)
	g.MarkUsedIndices([]uint16{0, 1, 2})
	if _, ok := g.FindEmptyInterval(2); ok {
		t.Fatalf("expected no contiguous run once indices are marked used")
	}
	indices, ok := g.FindScatteredPRBs(1)
	if !ok || indices[0] != 3 {
		t.Fatalf("expected only PRB 3 free, got %v ok=%v", indices, ok)
	}
}

func iv(start, stop uint16) prb.Interval {
	return prb.Interval{Start: start, Stop: stop}
}
