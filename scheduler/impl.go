// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"sync"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/ransched/grid"
	"github.com/omec-project/gnb-du/ransched/prb"
	"github.com/omec-project/gnb-du/ransched/slot"
	"github.com/omec-project/gnb-du/scheduler/si"
)

const (
	// dciAggregationLevel is the fixed PDCCH aggregation level used for
	// UE/RAR grants (SI grants use the configured SIExpert level).
	dciAggregationLevel = 4
	// maxUEGrantBytesPerSlot bounds a single UE's per-slot allocation so one
	// backlogged UE cannot starve the rest of the cell.
	maxUEGrantBytesPerSlot = 500
	// nofHARQProcesses is the number of DL HARQ processes cycled through
	// per UE (TS 38.321 default for FR1).
	nofHARQProcesses = 8
)

type ueState struct {
	cfg             UEConfig
	backlog         map[uint8]uint32 // lcid -> bytes
	nextHARQProcess uint8
}

type rachPending struct {
	rapid RNTI
}

type cellState struct {
	cfg  CellConfig
	grid *grid.ResourceGrid
	si   *si.Scheduler

	ues        map[uint32]*ueState // ueIndex -> state
	crntiIndex map[RNTI]uint32     // crnti -> ueIndex
	rach       []rachPending
	nextTC     RNTI
}

// Impl is the reference in-memory Scheduler implementation.
type Impl struct {
	mu    sync.Mutex
	cells map[uint8]*cellState
}

// NewImpl builds an empty scheduler with no cells configured.
func NewImpl() *Impl {
	return &Impl{cells: make(map[uint8]*cellState)}
}

func (s *Impl) HandleCellConfigurationRequest(cfg CellConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells[cfg.CellIndex] = &cellState{
		cfg:        cfg,
		grid:       grid.New(cfg.PDSCHBWPPRBs, cfg.PDCCHTotalCCE),
		si:         si.New(cfg.SI, cfg.SIExpert),
		ues:        make(map[uint32]*ueState),
		crntiIndex: make(map[RNTI]uint32),
		nextTC:     0x1,
	}
	logger.SchedLog.Infof("cell configured: cell=%d pci=%d", cfg.CellIndex, cfg.PCI)
	return true
}

func (s *Impl) HandleUECreationRequest(cfg UEConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[cfg.CellIndex]
	if !ok {
		logger.SchedLog.Warnf("UE creation for unconfigured cell=%d ignored", cfg.CellIndex)
		return
	}
	c.ues[cfg.UEIndex] = &ueState{cfg: cfg, backlog: make(map[uint8]uint32)}
	c.crntiIndex[cfg.CRNTI] = cfg.UEIndex
}

func (s *Impl) HandleUEReconfigurationRequest(cfg UEConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[cfg.CellIndex]
	if !ok {
		return
	}
	if u, exists := c.ues[cfg.UEIndex]; exists {
		u.cfg = cfg
		return
	}
	c.ues[cfg.UEIndex] = &ueState{cfg: cfg, backlog: make(map[uint8]uint32)}
	c.crntiIndex[cfg.CRNTI] = cfg.UEIndex
}

func (s *Impl) HandleUERemovalRequest(ueIndex uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cells {
		if u, ok := c.ues[ueIndex]; ok {
			delete(c.crntiIndex, u.cfg.CRNTI)
			delete(c.ues, ueIndex)
		}
	}
}

func (s *Impl) HandleULBSRIndication(ind ULBSRIndication) {
	// Uplink grant computation is out of scope (spec.md §1: UL grants are
	// opaque to MAC DL); recorded only for observability.
	logger.SchedLog.Debugf("UL BSR: ue=%d", ind.UEIndex)
}

func (s *Impl) HandleDLBufferStateIndication(ind DLBufferStateIndication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cells {
		// An indication carrying a C-RNTI is resolved through it; one with
		// RNTI 0 is resolved by its UEIndex.
		ueIndex := ind.UEIndex
		if ind.RNTI != 0 {
			var ok bool
			if ueIndex, ok = c.crntiIndex[ind.RNTI]; !ok {
				continue
			}
		}
		if u, ok := c.ues[ueIndex]; ok {
			u.backlog[ind.LCID] = ind.BSR
			return
		}
	}
}

func (s *Impl) HandleDLMACCEIndication(ind DLMACCEIndication) {
	logger.SchedLog.Debugf("DL MAC CE requested: ue=%d type=%d", ind.UEIndex, ind.CEType)
}

func (s *Impl) HandleRACHIndication(ind RACHIndication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[ind.CellIndex]
	if !ok {
		return
	}
	tc := c.nextTC
	c.nextTC++
	c.rach = append(c.rach, rachPending{rapid: tc})
}

func (s *Impl) HandleCRCIndication(ind CRCIndication) {
	logger.SchedLog.Debugf("CRC indication: ue=%d harq=%d valid=%v", ind.UEIndex, ind.HARQID, ind.CRCValid)
}

func (s *Impl) HandleUCIIndication(ind UCIIndication) {
	logger.SchedLog.Debugf("UCI indication: ue=%d sr=%v", ind.UEIndex, ind.SR)
}

func (s *Impl) HandlePagingIndication(ind PagingIndication) {
	logger.SchedLog.Debugf("paging indication: record=%d", ind.PagingRecordID)
}

// SlotIndication produces the per-slot decision for cell: broadcast
// (SSB/SIB/RAR) allocations take precedence over UE data (spec.md §4.2(c)),
// and PDCCH is reserved before PDSCH for every allocation (§4.2(b)).
func (s *Impl) SlotIndication(sl slot.Point, cell uint8) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cells[cell]
	if !ok {
		logger.SchedLog.Warnf("slot_indication for unconfigured cell=%d", cell)
		return nil
	}

	c.grid.Reset()
	res := &Result{}

	s.scheduleSSB(c, sl, res)
	s.scheduleSI(c, sl, res)
	s.scheduleRAR(c, res)
	s.scheduleUEs(c, res)

	return res
}

func (s *Impl) scheduleSSB(c *cellState, sl slot.Point, res *Result) {
	if c.cfg.SSBPeriodSlots == 0 {
		return
	}
	// SSBs are placed in slot 0 of a frame only; a period shorter than one
	// frame yields one SSB per frame.
	periodFrames := c.cfg.SSBPeriodSlots / uint32(sl.NumSlotsPerFrame())
	if periodFrames == 0 {
		periodFrames = 1
	}
	if uint32(sl.SlotIndex()) != 0 || uint32(sl.SFN())%periodFrames != 0 {
		return
	}
	res.DL.Broadcast.SSBInfo = append(res.DL.Broadcast.SSBInfo, SSBInfo{SSBIndex: 0})
}

func (s *Impl) scheduleSI(c *cellState, sl slot.Point, res *Result) {
	grants := c.si.RunSlot(sl, c.grid)
	for _, g := range grants {
		msg := c.cfg.SI.Messages[g.MessageIndex]
		res.DL.DLPDCCHs = append(res.DL.DLPDCCHs, PDCCHDLInfo{
			Type: DCISIF10,
			RNTI: si.SI_RNTI,
			SIF10: DCI10SIRNTI{
				FrequencyResource: uint32(g.PRBs.Start)<<16 | uint32(g.PRBs.Stop),
				MCS:               c.cfg.SIExpert.MCSIndex,
				SIIndicator:       uint8(g.MessageIndex),
			},
		})
		res.DL.Broadcast.SIBs = append(res.DL.Broadcast.SIBs, SIBInfo{TBSizeBytes: msg.MsgLenBytes})
	}
}

func (s *Impl) scheduleRAR(c *cellState, res *Result) {
	if len(c.rach) == 0 {
		return
	}
	iv, ok := c.grid.FindEmptyInterval(2)
	if !ok {
		logger.SchedLog.Infof("skipping RAR scheduling: no PDSCH space, cell=%d", c.cfg.CellIndex)
		return
	}
	if !c.grid.TryAllocPDCCHCandidate(dciAggregationLevel) {
		logger.SchedLog.Infof("skipping RAR scheduling: no PDCCH space, cell=%d", c.cfg.CellIndex)
		return
	}
	c.grid.MarkUsed(iv)

	pending := c.rach[0]
	c.rach = c.rach[1:]

	res.DL.DLPDCCHs = append(res.DL.DLPDCCHs, PDCCHDLInfo{
		Type: DCIRAF10,
		RNTI: pending.rapid,
		RAF10: DCI10RARNTI{
			FrequencyResource: uint32(iv.Start)<<16 | uint32(iv.Stop),
		},
	})
	res.DL.RARGrants = append(res.DL.RARGrants, RARInfo{RAPID: uint8(pending.rapid), TCRNTI: pending.rapid})
}

// scheduleUEs gives every UE with non-zero backlog on any LCID at most one
// grant per slot, bounded by maxUEGrantBytesPerSlot and available PRB/PDCCH
// space. UEs are visited in map iteration order, so which UE goes without a
// grant when space runs short is not fixed from slot to slot. PDCCH is reserved
// before the PRB interval is committed, undone if PRB allocation fails
// (§4.2(b)).
func (s *Impl) scheduleUEs(c *cellState, res *Result) {
	for _, u := range c.ues {
		total := uint32(0)
		var allocs []LCAlloc
		for lcid, bytes := range u.backlog {
			if bytes == 0 {
				continue
			}
			grant := bytes
			if total+grant > maxUEGrantBytesPerSlot {
				grant = maxUEGrantBytesPerSlot - total
			}
			if grant == 0 {
				continue
			}
			allocs = append(allocs, LCAlloc{LCID: lcid, SchedBytes: grant})
			total += grant
			if total >= maxUEGrantBytesPerSlot {
				break
			}
		}
		if len(allocs) == 0 {
			continue
		}

		nofPRBs := estimateUEPRBs(total)
		if !c.grid.TryAllocPDCCHCandidate(dciAggregationLevel) {
			continue
		}

		grant, ok := allocUEPRBs(c.grid, nofPRBs)
		if !ok {
			c.grid.FreePDCCHCandidate(dciAggregationLevel)
			continue
		}

		harqID := u.nextHARQProcess
		u.nextHARQProcess = (u.nextHARQProcess + 1) % nofHARQProcesses

		bounds := grant.Bounds()
		res.DL.DLPDCCHs = append(res.DL.DLPDCCHs, PDCCHDLInfo{
			Type: DCIUEF10,
			RNTI: u.cfg.CRNTI,
			UEF10: DCI10UERNTI{
				FrequencyResource: uint32(bounds.Start)<<16 | uint32(bounds.Stop),
				NDI:               true,
				HARQProcessID:     harqID,
			},
		})
		res.DL.UEGrants = append(res.DL.UEGrants, UEGrant{
			CRNTI: u.cfg.CRNTI,
			PRBs:  grant,
			TBs:   []TBInfo{{LCList: allocs}},
		})
	}
}

// allocUEPRBs tries a contiguous run first, falling back to a scattered
// bitmap allocation once the grid has fragmented past what a single
// interval can serve (mirrors the source's fallback from interval- to
// bitmap-encoded PRB allocation once contention fragments the BWP).
func allocUEPRBs(g *grid.ResourceGrid, nofPRBs uint16) (prb.Grant, bool) {
	if iv, ok := g.FindEmptyInterval(nofPRBs); ok {
		g.MarkUsed(iv)
		return prb.NewIntervalGrant(iv), true
	}
	indices, ok := g.FindScatteredPRBs(nofPRBs)
	if !ok {
		return prb.Grant{}, false
	}
	g.MarkUsedIndices(indices)
	return prb.NewBitmapGrant(g.TotalPRBs(), indices), true
}

func estimateUEPRBs(bytes uint32) uint16 {
	const bytesPerPRB = 20
	n := (bytes + bytesPerPRB - 1) / bytesPerPRB
	if n == 0 {
		n = 1
	}
	if n > 275 {
		n = 275
	}
	return uint16(n)
}

var _ Scheduler = (*Impl)(nil)
