// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package prb

import "testing"

func TestIntervalGrant(t *testing.T) {
	g := NewIntervalGrant(Interval{Start: 10, Stop: 20})
	if g.Kind() != KindInterval {
		t.Fatalf("expected interval kind")
	}
	if g.NofPRBs() != 10 {
		t.Fatalf("expected 10 PRBs, got %d", g.NofPRBs())
	}
}

func TestBitmapGrant(t *testing.T) {
	g := NewBitmapGrant(30, []uint16{1, 2, 29})
	if g.Kind() != KindBitmap {
		t.Fatalf("expected bitmap kind")
	}
	if !g.IsSet(1) || !g.IsSet(29) || g.IsSet(0) {
		t.Fatalf("unexpected bitmap contents")
	}
	if g.NofPRBs() != 3 {
		t.Fatalf("expected 3 PRBs, got %d", g.NofPRBs())
	}
}

func TestIntersectsAcrossVariants(t *testing.T) {
	iv := NewIntervalGrant(Interval{Start: 0, Stop: 5})
	bm := NewBitmapGrant(10, []uint16{4, 7})
	if !iv.Intersects(bm) {
		t.Fatalf("expected overlap at PRB 4")
	}
	bm2 := NewBitmapGrant(10, []uint16{7, 8})
	if iv.Intersects(bm2) {
		t.Fatalf("did not expect overlap")
	}
}

func TestBoundsInterval(t *testing.T) {
	g := NewIntervalGrant(Interval{Start: 10, Stop: 20})
	if b := g.Bounds(); b.Start != 10 || b.Stop != 20 {
		t.Fatalf("expected [10,20), got %+v", b)
	}
}

func TestBoundsBitmapSpansLowestToHighestSetBit(t *testing.T) {
	g := NewBitmapGrant(30, []uint16{4, 7, 20})
	if b := g.Bounds(); b.Start != 4 || b.Stop != 21 {
		t.Fatalf("expected [4,21), got %+v", b)
	}
}

func TestBoundsBitmapEmpty(t *testing.T) {
	g := NewBitmapGrant(10, nil)
	if b := g.Bounds(); b.Start != 0 || b.Stop != 0 {
		t.Fatalf("expected zero-value interval, got %+v", b)
	}
}
