// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package scheduler defines the MAC-facing scheduler contract (C2) and a
// reference in-memory implementation, grounded on scheduler_impl.h. Full
// resource-allocation optimality is not this package's concern; it exists
// to exercise the contract MAC DL depends on, with the SI window
// sub-scheduler (C3) wired in for broadcast traffic.
package scheduler

import (
	"github.com/omec-project/gnb-du/ransched/prb"
	"github.com/omec-project/gnb-du/ransched/slot"
	"github.com/omec-project/gnb-du/scheduler/si"
)

// RNTI is a Radio Network Temporary Identifier.
type RNTI uint16

// DCIType discriminates the payload carried by a PDCCH allocation.
type DCIType int

const (
	DCISIF10 DCIType = iota
	DCIRAF10
	DCIUEF10
)

// DCI10SIRNTI is the DCI format 1_0 payload scrambled with SI-RNTI.
type DCI10SIRNTI struct {
	FrequencyResource uint32
	TimeResource      uint8
	MCS               uint8
	SIIndicator       uint8
}

// DCI10RARNTI is the DCI format 1_0 payload scrambled with RA-RNTI.
type DCI10RARNTI struct {
	FrequencyResource uint32
	TimeResource      uint8
	MCS               uint8
}

// DCI10UERNTI is a DCI format 1_0 payload addressed to a specific UE's C-RNTI.
type DCI10UERNTI struct {
	FrequencyResource uint32
	TimeResource      uint8
	MCS               uint8
	NDI               bool
	HARQProcessID     uint8
}

// PDCCHDLInfo is one DL PDCCH allocation entry in a slot's schedule.
type PDCCHDLInfo struct {
	Type  DCIType
	RNTI  RNTI
	SIF10 DCI10SIRNTI
	RAF10 DCI10RARNTI
	UEF10 DCI10UERNTI
}

// SSBInfo carries the scheduling metadata for one SSB occasion; PHY-layer
// PDU assembly (PCI, beta-PSS profile etc.) happens downstream in mac/.
type SSBInfo struct {
	SSBIndex uint8
}

// SIBInfo is one scheduled SIB1/SI-message grant.
type SIBInfo struct {
	TBSizeBytes uint32
}

// RARInfo is one scheduled Random Access Response grant.
type RARInfo struct {
	RAPID  uint8
	TCRNTI RNTI
}

// LCAlloc allocates sched_bytes to one logical channel within a TB.
type LCAlloc struct {
	LCID       uint8
	SchedBytes uint32
}

// TBInfo is one transport block's logical-channel allocations.
type TBInfo struct {
	LCList []LCAlloc
}

// UEGrant is one UE's DL grant for a slot: an addressed set of TBs and the
// PRBs allocated to carry them, contiguous or scattered depending on grid
// fragmentation at allocation time.
type UEGrant struct {
	CRNTI RNTI
	PRBs  prb.Grant
	TBs   []TBInfo
}

// Broadcast groups the broadcast (SSB/SIB) portion of a DL result; broadcast
// allocations take precedence over UE data (spec.md §4.2(c)).
type Broadcast struct {
	SSBInfo []SSBInfo
	SIBs    []SIBInfo
}

// DLResult is the downlink portion of a slot's scheduling decision.
type DLResult struct {
	Broadcast Broadcast
	DLPDCCHs  []PDCCHDLInfo
	RARGrants []RARInfo
	UEGrants  []UEGrant
}

// ULResult is opaque to MAC DL; passed through untouched to the PHY.
type ULResult struct {
	Opaque any
}

// Result is the per-slot, per-cell scheduling decision (sched_result).
type Result struct {
	DL DLResult
	UL ULResult
}

// CellConfig is a cell's static scheduler configuration.
type CellConfig struct {
	CellIndex      uint8
	PCI            uint16
	SlotsPerFrame  uint16
	PDSCHBWPPRBs   uint16
	PDCCHTotalCCE  uint8
	SI             si.Config
	SIExpert       si.ExpertConfig
	SSBPeriodSlots uint32
}

// UEConfig is a UE's static/dynamic scheduler-visible configuration.
type UEConfig struct {
	UEIndex   uint32
	CRNTI     RNTI
	CellIndex uint8
	LCIDs     []uint8
}

// ULBSRIndication carries a UE's uplink buffer status report.
type ULBSRIndication struct {
	UEIndex          uint32
	LCGReportedBytes map[uint8]uint32
}

// DLBufferStateIndication feeds back a logical channel's current DL Tx
// backlog so future slots can bias allocation toward it.
type DLBufferStateIndication struct {
	UEIndex uint32
	RNTI    RNTI
	LCID    uint8
	BSR     uint32
}

// DLMACCEIndication requests a MAC CE be scheduled for a UE.
type DLMACCEIndication struct {
	UEIndex uint32
	CEType  uint8
}

// RACHIndication carries a detected RACH occasion.
type RACHIndication struct {
	CellIndex uint8
	RAPID     uint8
	SlotDelay uint8
}

// CRCIndication carries a PUSCH CRC result.
type CRCIndication struct {
	UEIndex  uint32
	HARQID   uint8
	CRCValid bool
}

// UCIIndication carries UL control information (SR/CSI/HARQ-ACK).
type UCIIndication struct {
	UEIndex uint32
	SR      bool
}

// PagingIndication requests a paging message be scheduled.
type PagingIndication struct {
	PagingRecordID uint64
}

// Scheduler is the contract mac.CellProcessor consumes (spec.md §4.2). Every
// method must be safe to call from any thread; UE lifecycle/feedback must be
// reflected no later than the next SlotIndication for the affected cell.
type Scheduler interface {
	HandleCellConfigurationRequest(cfg CellConfig) bool
	HandleUECreationRequest(cfg UEConfig)
	HandleUEReconfigurationRequest(cfg UEConfig)
	HandleUERemovalRequest(ueIndex uint32)

	HandleULBSRIndication(ind ULBSRIndication)
	HandleDLBufferStateIndication(ind DLBufferStateIndication)
	HandleDLMACCEIndication(ind DLMACCEIndication)

	HandleRACHIndication(ind RACHIndication)
	HandleCRCIndication(ind CRCIndication)
	HandleUCIIndication(ind UCIIndication)
	HandlePagingIndication(ind PagingIndication)

	// SlotIndication returns the scheduling decision for (sl, cell), or nil
	// on overload; MAC treats nil as an empty slot.
	SlotIndication(sl slot.Point, cell uint8) *Result
}
