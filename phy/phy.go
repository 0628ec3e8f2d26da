// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package phy defines the MAC-to-PHY boundary named in spec.md §6. The PHY
// itself (LDPC kernels, modulation tables, channel estimation) is out of
// scope; this package only fixes the interface the MAC cell processor calls
// into, plus a recording test double used by mac/ tests.
package phy

import (
	"github.com/omec-project/gnb-du/ransched/slot"
)

// DLSchedResult is the first-of-three PHY submission per slot: DCIs, SSB and
// SIB scheduling metadata (spec.md §6 message 1).
type DLSchedResult struct {
	Slot       slot.Point
	SSBPDUs    []SSBPDU
	PDCCHPDUs  []PDCCHPDU
	DLResValid bool
}

// SSBPDU carries the assembled SSB/MIB PHY payload for one SSB occasion.
type SSBPDU struct {
	PCI              uint16
	SSBIndex         uint8
	SubcarrierOffset uint16
	OffsetToPointA   uint16
	BetaPSSProfile   int8
	MIB              []byte
}

// PDCCHPDU is a packed DCI payload ready for PHY encoding.
type PDCCHPDU struct {
	Payload []byte
	RNTI    uint16
}

// DLDataResult is the second PHY submission per slot: encoded SIB/RAR/UE
// PDUs (spec.md §6 message 2).
type DLDataResult struct {
	Slot     slot.Point
	SIB1PDUs [][]byte
	RARPDUs  [][]byte
	UEPDUs   [][]byte
}

// ULSchedResult is the third PHY submission per slot: opaque UL grants
// passed through untouched (spec.md §6 message 3).
type ULSchedResult struct {
	Opaque any
}

// CellNotifier is the PHY-facing interface a MAC cell processor is given at
// construction. It borrows this reference; PHY lifetime outlives MAC.
type CellNotifier interface {
	OnNewDownlinkSchedulerResults(DLSchedResult)
	OnNewDownlinkData(DLDataResult)
	OnNewUplinkSchedulerResults(ULSchedResult)
}

// Recorder is a CellNotifier test double that records every call in order,
// letting tests assert P1 (three ordered submissions per non-empty slot).
type Recorder struct {
	Calls []string
	DL    []DLSchedResult
	Data  []DLDataResult
	UL    []ULSchedResult
}

func (r *Recorder) OnNewDownlinkSchedulerResults(res DLSchedResult) {
	r.Calls = append(r.Calls, "dl")
	r.DL = append(r.DL, res)
}

func (r *Recorder) OnNewDownlinkData(res DLDataResult) {
	r.Calls = append(r.Calls, "data")
	r.Data = append(r.Data, res)
}

func (r *Recorder) OnNewUplinkSchedulerResults(res ULSchedResult) {
	r.Calls = append(r.Calls, "ul")
	r.UL = append(r.UL, res)
}
