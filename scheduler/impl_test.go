// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"testing"

	"github.com/omec-project/gnb-du/ransched/prb"
	"github.com/omec-project/gnb-du/ransched/slot"
	"github.com/omec-project/gnb-du/scheduler/si"
)

func testCellConfig() CellConfig {
	return CellConfig{
		CellIndex:     0,
		PCI:           1,
		SlotsPerFrame: 20,
		PDSCHBWPPRBs:  275,
		PDCCHTotalCCE: 32,
		SI: si.Config{
			WindowLenSlots: 10,
			Messages:       []si.MessageConfig{{PeriodRadioFrames: 8, MsgLenBytes: 100}},
		},
		SIExpert:       si.ExpertConfig{MCSIndex: 10, DCIAggregationLevel: 4, OFDMSymbolsPerPDSCH: 10},
		SSBPeriodSlots: 20,
	}
}

func sl(sfn, idx uint16) slot.Point {
	return slot.New(sfn, idx, 20)
}

func TestSlotIndicationUnconfiguredCellReturnsNil(t *testing.T) {
	s := NewImpl()
	if res := s.SlotIndication(sl(0, 0), 5); res != nil {
		t.Fatalf("expected nil result for unconfigured cell, got %+v", res)
	}
}

func TestSlotIndicationSchedulesSIAtWindowOpen(t *testing.T) {
	s := NewImpl()
	if !s.HandleCellConfigurationRequest(testCellConfig()) {
		t.Fatalf("cell configuration rejected")
	}

	res := s.SlotIndication(sl(0, 0), 0)
	if res == nil {
		t.Fatalf("expected non-nil result")
	}
	if len(res.DL.Broadcast.SIBs) != 1 {
		t.Fatalf("expected one SIB scheduled at window open, got %d", len(res.DL.Broadcast.SIBs))
	}
	if len(res.DL.DLPDCCHs) == 0 || res.DL.DLPDCCHs[0].Type != DCISIF10 {
		t.Fatalf("expected SI-RNTI PDCCH scheduled, got %+v", res.DL.DLPDCCHs)
	}
}

func TestSlotIndicationBroadcastPrecedesUEData(t *testing.T) {
	s := NewImpl()
	s.HandleCellConfigurationRequest(testCellConfig())
	s.HandleUECreationRequest(UEConfig{UEIndex: 1, CRNTI: 0x4601, CellIndex: 0, LCIDs: []uint8{1}})
	s.HandleDLBufferStateIndication(DLBufferStateIndication{UEIndex: 1, LCID: 1, BSR: 200})

	res := s.SlotIndication(sl(0, 0), 0)
	if res == nil {
		t.Fatalf("expected non-nil result")
	}
	if len(res.DL.Broadcast.SIBs) != 1 {
		t.Fatalf("expected SIB still scheduled alongside UE data")
	}
	if len(res.DL.UEGrants) != 1 {
		t.Fatalf("expected one UE grant, got %d", len(res.DL.UEGrants))
	}
	// broadcast PDCCH must be ordered ahead of the UE PDCCH.
	if res.DL.DLPDCCHs[0].Type != DCISIF10 {
		t.Fatalf("expected broadcast PDCCH first, got %+v", res.DL.DLPDCCHs[0])
	}
}

func TestSlotIndicationNoOverlappingPRBAllocations(t *testing.T) {
	s := NewImpl()
	cfg := testCellConfig()
	cfg.PDSCHBWPPRBs = 10 // small grid to force adjacency checks to matter.
	s.HandleCellConfigurationRequest(cfg)
	s.HandleUECreationRequest(UEConfig{UEIndex: 1, CRNTI: 0x4601, CellIndex: 0, LCIDs: []uint8{1}})
	s.HandleUECreationRequest(UEConfig{UEIndex: 2, CRNTI: 0x4602, CellIndex: 0, LCIDs: []uint8{1}})
	s.HandleDLBufferStateIndication(DLBufferStateIndication{UEIndex: 1, LCID: 1, BSR: 40})
	s.HandleDLBufferStateIndication(DLBufferStateIndication{UEIndex: 2, LCID: 1, BSR: 40})

	res := s.SlotIndication(sl(0, 5), 0) // off SI window: isolates UE allocation.
	if res == nil {
		t.Fatalf("expected non-nil result")
	}

	grants := res.DL.UEGrants
	for i := 0; i < len(grants); i++ {
		for j := i + 1; j < len(grants); j++ {
			if grants[i].PRBs.Intersects(grants[j].PRBs) {
				t.Fatalf("overlapping PRB allocations: %+v and %+v", grants[i].PRBs, grants[j].PRBs)
			}
		}
	}
}

func TestRACHIndicationProducesRARGrant(t *testing.T) {
	s := NewImpl()
	s.HandleCellConfigurationRequest(testCellConfig())
	s.HandleRACHIndication(RACHIndication{CellIndex: 0, RAPID: 3, SlotDelay: 0})

	res := s.SlotIndication(sl(0, 5), 0)
	if len(res.DL.RARGrants) != 1 {
		t.Fatalf("expected one RAR grant, got %d", len(res.DL.RARGrants))
	}
}

func TestUERemovalStopsFutureGrants(t *testing.T) {
	s := NewImpl()
	s.HandleCellConfigurationRequest(testCellConfig())
	s.HandleUECreationRequest(UEConfig{UEIndex: 1, CRNTI: 0x4601, CellIndex: 0, LCIDs: []uint8{1}})
	s.HandleDLBufferStateIndication(DLBufferStateIndication{UEIndex: 1, LCID: 1, BSR: 100})
	s.HandleUERemovalRequest(1)

	res := s.SlotIndication(sl(0, 5), 0)
	if len(res.DL.UEGrants) != 0 {
		t.Fatalf("expected no UE grants after removal, got %+v", res.DL.UEGrants)
	}
}

func TestScheduleUEsFallsBackToBitmapWhenGridFragmented(t *testing.T) {
	s := NewImpl()
	cfg := testCellConfig()
	cfg.PDSCHBWPPRBs = 10
	s.HandleCellConfigurationRequest(cfg)
	s.HandleUECreationRequest(UEConfig{UEIndex: 1, CRNTI: 0x4601, CellIndex: 0, LCIDs: []uint8{1}})
	s.HandleDLBufferStateIndication(DLBufferStateIndication{UEIndex: 1, LCID: 1, BSR: 40})

	c := s.cells[0]
	c.grid.Reset()
	for i := uint16(1); i < 10; i += 2 {
		c.grid.MarkUsed(prb.Interval{Start: i, Stop: i + 1})
	}

	res := &Result{}
	s.scheduleUEs(c, res)

	if len(res.DL.UEGrants) != 1 {
		t.Fatalf("expected one UE grant, got %d", len(res.DL.UEGrants))
	}
	if res.DL.UEGrants[0].PRBs.Kind() != prb.KindBitmap {
		t.Fatalf("expected a scattered bitmap grant once no contiguous run fits, got kind=%v", res.DL.UEGrants[0].PRBs.Kind())
	}
}
