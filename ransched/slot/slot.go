// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package slot provides the slot-point arithmetic shared by the MAC and
// scheduler pipelines: an (SFN, slot index) pair with modulo arithmetic
// over a single wrap window, as used throughout the slot-driven pipeline.
package slot

const (
	// NumSFN is the number of distinct System Frame Numbers before wraparound.
	NumSFN = 1024
)

// Point identifies a slot as an (SFN, slot-within-frame) pair, together with
// the numerology (slots per radio frame) needed to interpret it.
type Point struct {
	sfn           uint16
	slotIndex     uint16
	slotsPerFrame uint16
}

// New builds a Point. sfn is reduced modulo NumSFN and slotIndex must be in
// [0, slotsPerFrame).
func New(sfn, slotIndex, slotsPerFrame uint16) Point {
	return Point{
		sfn:           sfn % NumSFN,
		slotIndex:     slotIndex % slotsPerFrame,
		slotsPerFrame: slotsPerFrame,
	}
}

// Valid reports whether p was constructed with a nonzero numerology.
func (p Point) Valid() bool {
	return p.slotsPerFrame > 0
}

// SFN returns the system frame number.
func (p Point) SFN() uint16 {
	return p.sfn
}

// SlotIndex returns the slot index within the frame.
func (p Point) SlotIndex() uint16 {
	return p.slotIndex
}

// NumSlotsPerFrame returns the configured numerology.
func (p Point) NumSlotsPerFrame() uint16 {
	return p.slotsPerFrame
}

// period is the total number of slots in one full SFN wrap window.
func (p Point) period() uint32 {
	return uint32(NumSFN) * uint32(p.slotsPerFrame)
}

// numeric linearizes the slot point into a single counter within the wrap
// window, for arithmetic and comparison.
func (p Point) numeric() uint32 {
	return uint32(p.sfn)*uint32(p.slotsPerFrame) + uint32(p.slotIndex)
}

// Add returns the slot point offset by n slots (n may be negative), wrapping
// within the SFN period.
func (p Point) Add(n int) Point {
	period := int64(p.period())
	v := (int64(p.numeric()) + int64(n)) % period
	if v < 0 {
		v += period
	}
	sfn := uint16(v / int64(p.slotsPerFrame))
	idx := uint16(v % int64(p.slotsPerFrame))
	return Point{sfn: sfn, slotIndex: idx, slotsPerFrame: p.slotsPerFrame}
}

// Sub returns the signed slot distance p-other, resolved within one half of
// the wrap window (the usual "how far ahead/behind" comparison for a cyclic
// counter of this size).
func (p Point) Sub(other Point) int {
	period := int64(p.period())
	diff := int64(p.numeric()) - int64(other.numeric())
	half := period / 2
	if diff > half {
		diff -= period
	} else if diff < -half {
		diff += period
	}
	return int(diff)
}

// Before reports whether p occurs strictly before other, within one wrap
// window (I1: slot-indication order is only meaningful modulo one period).
func (p Point) Before(other Point) bool {
	return p.Sub(other) < 0
}

// Equal reports whether p and other identify the same slot.
func (p Point) Equal(other Point) bool {
	return p.sfn == other.sfn && p.slotIndex == other.slotIndex && p.slotsPerFrame == other.slotsPerFrame
}
