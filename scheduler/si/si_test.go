// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package si

import (
	"testing"

	"github.com/omec-project/gnb-du/ransched/grid"
	"github.com/omec-project/gnb-du/ransched/slot"
)

func newTestScheduler() *Scheduler {
	cfg := Config{
		WindowLenSlots: 10,
		Messages: []MessageConfig{
			{PeriodRadioFrames: 8, MsgLenBytes: 100},
			{PeriodRadioFrames: 8, MsgLenBytes: 100},
			{PeriodRadioFrames: 8, MsgLenBytes: 100},
		},
	}
	expert := ExpertConfig{MCSIndex: 10, DCIAggregationLevel: 4, OFDMSymbolsPerPDSCH: 10}
	return New(cfg, expert)
}

func sl(sfn, idx uint16) slot.Point {
	return slot.New(sfn, idx, 20)
}

func TestWindowAlignment(t *testing.T) {
	s := newTestScheduler()
	g := grid.New(275, 32)

	// i=0 window opens at (sfn=0, slot=0).
	s.updateWindows(sl(0, 0))
	if !s.pending[0].open {
		t.Fatalf("expected message 0 window open at (sfn=0, slot=0)")
	}
	if s.pending[1].open {
		t.Fatalf("did not expect message 1 window open yet")
	}

	// i=1 window opens at (sfn=0, slot=10).
	s.updateWindows(sl(0, 10))
	if !s.pending[1].open {
		t.Fatalf("expected message 1 window open at (sfn=0, slot=10)")
	}

	// message 0's window should have closed by slot 10 (opened at slot 0, W=10).
	if s.pending[0].open {
		t.Fatalf("expected message 0 window closed by slot 10")
	}

	// i=2 opens at (sfn=1, slot=0).
	s.updateWindows(sl(1, 0))
	if !s.pending[2].open {
		t.Fatalf("expected message 2 window open at (sfn=1, slot=0)")
	}
	_ = g
}

func TestRunSlotPlacesMessageWithinOpenWindow(t *testing.T) {
	s := newTestScheduler()
	g := grid.New(275, 32)

	grants := s.RunSlot(sl(0, 0), g)
	if len(grants) != 1 || grants[0].MessageIndex != 0 {
		t.Fatalf("expected message 0 placed at window open, got %+v", grants)
	}
}

func TestRunSlotSkipsWhenPDSCHFull(t *testing.T) {
	s := newTestScheduler()
	g := grid.New(1, 32) // too small for any SI message.

	grants := s.RunSlot(sl(0, 0), g)
	if len(grants) != 0 {
		t.Fatalf("expected no placement when PDSCH space is insufficient, got %+v", grants)
	}
}

func TestRunSlotPlacesMessageOnlyOncePerWindow(t *testing.T) {
	s := newTestScheduler()
	g := grid.New(275, 32)

	grants := s.RunSlot(sl(0, 0), g)
	if len(grants) != 1 || grants[0].MessageIndex != 0 {
		t.Fatalf("expected message 0 placed at window open, got %+v", grants)
	}

	// Window stays open through slot 9 (W=10); message 0 must not be
	// re-placed on any later slot of the same window occurrence.
	for idx := uint16(1); idx < 10; idx++ {
		grants = s.RunSlot(sl(0, idx), g)
		for _, gr := range grants {
			if gr.MessageIndex == 0 {
				t.Fatalf("message 0 re-placed within its own window at slot %d", idx)
			}
		}
	}
}

func TestRunSlotDisabledWithNoMessages(t *testing.T) {
	s := New(Config{}, ExpertConfig{})
	g := grid.New(275, 32)
	if grants := s.RunSlot(sl(0, 0), g); grants != nil {
		t.Fatalf("expected nil grants when SI scheduling is disabled")
	}
}
