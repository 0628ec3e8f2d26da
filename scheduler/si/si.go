// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package si implements the System Information window sub-scheduler (C3):
// it computes SI-message transmission windows and places their DCIs/PDSCH
// grants, grounded on si_message_scheduler.cpp.
package si

import (
	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/ransched/grid"
	"github.com/omec-project/gnb-du/ransched/prb"
	"github.com/omec-project/gnb-du/ransched/slot"
)

// SI_RNTI is the fixed RNTI used for all SI-message PDCCH candidates.
const SI_RNTI = 0xFFFF

// MessageConfig is the static per-SI-message configuration (spec.md §6).
type MessageConfig struct {
	PeriodRadioFrames uint32 // T_i, in radio frames
	MsgLenBytes       uint32
}

// Config is the SI scheduling configuration for one cell.
type Config struct {
	WindowLenSlots uint32 // W, common to all SI messages
	Messages       []MessageConfig
}

// ExpertConfig is the tunable MCS/aggregation-level configuration (spec.md §6).
type ExpertConfig struct {
	MCSIndex            uint8
	DCIAggregationLevel uint8
	DMRSOverheadPerPRB  uint32 // REs consumed by DMRS per PRB in each OFDM symbol, subtracted per symbol in the PRB estimate
	OFDMSymbolsPerPDSCH uint8
}

// PDCCHGrant is the DCI 1_0 SI-RNTI PDCCH allocation the sub-scheduler
// produces for one placed SI message.
type PDCCHGrant struct {
	MessageIndex     int
	AggregationLevel uint8
	PRBs             prb.Interval
}

// window tracks one SI message's open/closed transmission window.
type window struct {
	start slot.Point
	open  bool
	nofTx int
}

// Scheduler computes, per slot, which pending SI messages should be placed.
type Scheduler struct {
	cfg    Config
	expert ExpertConfig
	pending []window
}

// New builds a Scheduler for cfg/expert. An empty cfg.Messages disables SI
// scheduling entirely (mirrors the source's optional si_sched_cfg).
func New(cfg Config, expert ExpertConfig) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		expert:  expert,
		pending: make([]window, len(cfg.Messages)),
	}
}

// RunSlot updates window state for sl and attempts to place any SI message
// whose window is currently open, in configured index order (DESIGN.md Open
// Question 2). Placed messages are returned as PDCCH+PRB grants; the caller
// is responsible for turning these into a full DCI/SIB1 PDU.
func (s *Scheduler) RunSlot(sl slot.Point, g *grid.ResourceGrid) []PDCCHGrant {
	if len(s.cfg.Messages) == 0 {
		return nil
	}
	s.updateWindows(sl)
	return s.schedulePending(sl, g)
}

// updateWindows opens/closes SI message windows per the §3 window formula:
// a window for message i (0-indexed) opens at slot a = (i*W) mod N in frame
// sfn iff sfn mod T_i == floor(i*W / N).
func (s *Scheduler) updateWindows(sl slot.Point) {
	n := uint32(sl.NumSlotsPerFrame())
	sfn := uint32(sl.SFN())

	for i := range s.pending {
		msg := s.cfg.Messages[i]

		if s.pending[i].open {
			if sl.Sub(s.pending[i].start) >= int(s.cfg.WindowLenSlots) {
				s.pending[i] = window{}
			}
			continue
		}

		x := uint32(i) * s.cfg.WindowLenSlots
		a := x % n
		if uint32(sl.SlotIndex()) != a {
			continue
		}
		t := msg.PeriodRadioFrames
		if t == 0 || sfn%t != x/n {
			continue
		}

		s.pending[i] = window{start: sl, open: true}
	}
}

// schedulePending attempts placement, once per slot, for every message with
// an open window, in ascending configured-index order.
func (s *Scheduler) schedulePending(sl slot.Point, g *grid.ResourceGrid) []PDCCHGrant {
	var grants []PDCCHGrant
	for i := range s.pending {
		if !s.pending[i].open || s.pending[i].nofTx > 0 {
			continue
		}
		grant, ok := s.allocate(i, g)
		if !ok {
			continue
		}
		s.pending[i].nofTx++
		grants = append(grants, grant)
	}
	return grants
}

// allocate implements allocate_si_message: compute required PRBs, find PDSCH
// space, then reserve a PDCCH candidate — PRBs are only marked used once
// both steps succeed (spec.md §4.2(b), SPEC_FULL.md Part E item 2).
func (s *Scheduler) allocate(msgIndex int, g *grid.ResourceGrid) (PDCCHGrant, bool) {
	msg := s.cfg.Messages[msgIndex]

	nofPRBs := s.estimatePRBs(msg.MsgLenBytes)
	iv, ok := g.FindEmptyInterval(nofPRBs)
	if !ok {
		logger.SiLog.Infof("skipping SI message scheduling: not enough PDSCH space, index=%d", msgIndex)
		return PDCCHGrant{}, false
	}

	if !g.TryAllocPDCCHCandidate(s.expert.DCIAggregationLevel) {
		logger.SiLog.Infof("skipping SI message scheduling: not enough PDCCH space, index=%d", msgIndex)
		return PDCCHGrant{}, false
	}

	g.MarkUsed(iv)
	return PDCCHGrant{
		MessageIndex:     msgIndex,
		AggregationLevel: s.expert.DCIAggregationLevel,
		PRBs:             iv,
	}, true
}

// estimatePRBs computes the number of PRBs needed for msgLenBytes given the
// configured MCS/symbol/DMRS overhead, following the shape of
// prbs_calculator_sch_config without reproducing exact MCS tables (out of
// scope per spec.md §1: "modulation tables").
func (s *Scheduler) estimatePRBs(msgLenBytes uint32) uint16 {
	if msgLenBytes == 0 {
		return 0
	}
	// Approximate bits-per-PRB-per-symbol at QAM64 (6 bits/RE), 12 REs/PRB,
	// minus DMRS overhead, times the configured symbol count.
	const qam64BitsPerRE = 6
	const rePerPRB = 12
	symbols := uint32(s.expert.OFDMSymbolsPerPDSCH)
	if symbols == 0 {
		symbols = 1
	}
	usableRE := rePerPRB*symbols - s.expert.DMRSOverheadPerPRB*symbols
	if usableRE == 0 {
		usableRE = 1
	}
	bitsPerPRB := usableRE * qam64BitsPerRE
	totalBits := msgLenBytes * 8
	nofPRBs := (totalBits + bitsPerPRB - 1) / bitsPerPRB
	if nofPRBs > 0xFFFF {
		nofPRBs = 0xFFFF
	}
	return uint16(nofPRBs)
}
