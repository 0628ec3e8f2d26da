// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package prb models frequency-domain PRB grants as a tagged sum, mirroring
// the source's alternation between interval-encoded and bitmap-encoded PRB
// allocation (design note in SPEC_FULL.md Part A).
package prb

// Kind discriminates the two PrbGrant representations.
type Kind int

const (
	// KindInterval is a contiguous [Start, Stop) run of PRBs.
	KindInterval Kind = iota
	// KindBitmap is an arbitrary subset of PRBs, one bit per PRB.
	KindBitmap
)

// Interval is a half-open, contiguous run of PRB indices.
type Interval struct {
	Start uint16
	Stop  uint16
}

// Length returns the number of PRBs spanned by the interval.
func (iv Interval) Length() uint16 {
	if iv.Stop <= iv.Start {
		return 0
	}
	return iv.Stop - iv.Start
}

// Grant is a tagged sum of Interval | Bitmap. Use NewIntervalGrant or
// NewBitmapGrant to construct one; Kind reports which variant is active.
type Grant struct {
	kind     Kind
	interval Interval
	bits     []uint64
	nofPRBs  uint16
}

// NewIntervalGrant builds a Grant carrying a contiguous PRB interval.
func NewIntervalGrant(iv Interval) Grant {
	return Grant{kind: KindInterval, interval: iv}
}

// NewBitmapGrant builds a Grant carrying an explicit PRB bitmap of nofPRBs bits.
func NewBitmapGrant(nofPRBs uint16, setBits []uint16) Grant {
	words := (int(nofPRBs) + 63) / 64
	g := Grant{kind: KindBitmap, bits: make([]uint64, words), nofPRBs: nofPRBs}
	for _, b := range setBits {
		if b < nofPRBs {
			g.bits[b/64] |= 1 << (b % 64)
		}
	}
	return g
}

// Kind reports which variant is active.
func (g Grant) Kind() Kind {
	return g.kind
}

// Interval returns the interval variant's payload; only valid when
// Kind() == KindInterval.
func (g Grant) Interval() Interval {
	return g.interval
}

// IsSet reports whether PRB index i is part of a bitmap-variant grant.
// Only valid when Kind() == KindBitmap.
func (g Grant) IsSet(i uint16) bool {
	if i >= g.nofPRBs {
		return false
	}
	return g.bits[i/64]&(1<<(i%64)) != 0
}

// NofPRBs returns the number of PRBs actually allocated by this grant,
// regardless of variant.
func (g Grant) NofPRBs() uint16 {
	switch g.kind {
	case KindInterval:
		return g.interval.Length()
	case KindBitmap:
		var n uint16
		for i := uint16(0); i < g.nofPRBs; i++ {
			if g.IsSet(i) {
				n++
			}
		}
		return n
	default:
		return 0
	}
}

// Intersects reports whether g and other share at least one PRB. Both
// variants are normalized to a per-PRB test so an interval grant can be
// compared against a bitmap grant.
func (g Grant) Intersects(other Grant) bool {
	span := g.upperBound()
	if o := other.upperBound(); o > span {
		span = o
	}
	for i := uint16(0); i < span; i++ {
		if g.contains(i) && other.contains(i) {
			return true
		}
	}
	return false
}

// Bounds returns the smallest [start, stop) interval that covers every PRB
// carried by g, regardless of variant. For a bitmap grant this may include
// unset PRBs between the lowest and highest set bit; callers that need a
// coarse frequency-resource span (e.g. DCI encoding) use this rather than
// reconstructing bitmap-vs-interval logic themselves.
func (g Grant) Bounds() Interval {
	switch g.kind {
	case KindInterval:
		return g.interval
	case KindBitmap:
		var lo, hi uint16
		found := false
		for i := uint16(0); i < g.nofPRBs; i++ {
			if !g.IsSet(i) {
				continue
			}
			if !found {
				lo = i
				found = true
			}
			hi = i + 1
		}
		if !found {
			return Interval{}
		}
		return Interval{Start: lo, Stop: hi}
	default:
		return Interval{}
	}
}

func (g Grant) upperBound() uint16 {
	switch g.kind {
	case KindInterval:
		return g.interval.Stop
	case KindBitmap:
		return g.nofPRBs
	default:
		return 0
	}
}

func (g Grant) contains(i uint16) bool {
	switch g.kind {
	case KindInterval:
		return i >= g.interval.Start && i < g.interval.Stop
	case KindBitmap:
		return g.IsSet(i)
	default:
		return false
	}
}
