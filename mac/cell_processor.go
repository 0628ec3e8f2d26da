// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package mac

import (
	"github.com/omec-project/gnb-du/executor"
	"github.com/omec-project/gnb-du/harq"
	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/phy"
	"github.com/omec-project/gnb-du/ransched/slot"
	"github.com/omec-project/gnb-du/scheduler"
)

// bytesPerCodeblock approximates TS 38.212's 8448-bit LDPC segmentation
// threshold, used only to size HARQ soft-buffer reservations.
const bytesPerCodeblock = 1056

// CellProcessor drives one cell's slot pipeline. All scheduling and PDU
// assembly happens on cellExec; Start/Stop cross over from ctrlExec via the
// two-hop async handshake, mirroring how cell activation is decoupled from
// the caller's own executor.
type CellProcessor struct {
	cellIndex uint8
	pci       uint16
	sched     scheduler.Scheduler
	notifier  phy.CellNotifier
	ueMgr     UEManager
	pool      *harq.Pool

	cellExec *executor.Executor
	ctrlExec *executor.Executor

	active bool

	// pendingBSR accumulates this slot's post-grant logical-channel backlog
	// between submitData and refreshBufferState. Reused across slots to
	// avoid a per-slot allocation.
	pendingBSR []scheduler.DLBufferStateIndication
}

// NewCellProcessor builds a processor for cellIndex. cellExec serializes
// this cell's slot processing; ctrlExec is the caller's own executor, used
// as the resumption point for Start/Stop. pool may be nil, in which case
// HARQ soft-buffer bookkeeping is skipped.
func NewCellProcessor(cellIndex uint8, pci uint16, sched scheduler.Scheduler, notifier phy.CellNotifier, ueMgr UEManager, pool *harq.Pool, cellExec, ctrlExec *executor.Executor) *CellProcessor {
	return &CellProcessor{
		cellIndex: cellIndex,
		pci:       pci,
		sched:     sched,
		notifier:  notifier,
		ueMgr:     ueMgr,
		pool:      pool,
		cellExec:  cellExec,
		ctrlExec:  ctrlExec,
	}
}

// Start activates the cell. done, if non-nil, is closed on ctrlExec once
// activation has taken effect on the cell executor.
func (cp *CellProcessor) Start(done chan<- struct{}) bool {
	return executor.DispatchAndResumeOn(cp.cellExec, cp.ctrlExec, func() {
		cp.active = true
		logger.MacLog.Infow("cell activated", "cell", cp.cellIndex)
	}, done)
}

// Stop deactivates the cell. Once stopped, slot indications still arrive
// and are processed, but only the empty DL scheduler result is submitted
// (mirrors the original's early-return behavior for an inactive cell).
func (cp *CellProcessor) Stop(done chan<- struct{}) bool {
	return executor.DispatchAndResumeOn(cp.cellExec, cp.ctrlExec, func() {
		cp.active = false
		logger.MacLog.Infow("cell deactivated", "cell", cp.cellIndex)
	}, done)
}

// HandleSlotIndication re-dispatches slot processing onto the cell
// executor; PHY delivers slot indications on its own thread.
func (cp *CellProcessor) HandleSlotIndication(sl slot.Point) {
	if ok := cp.cellExec.Execute(func() { cp.processSlot(sl) }); !ok {
		logger.MacLog.Warnw("cell executor queue full, dropping slot indication", "cell", cp.cellIndex, "slot", sl)
	}
}

func (cp *CellProcessor) processSlot(sl slot.Point) {
	if !cp.active {
		cp.notifier.OnNewDownlinkSchedulerResults(phy.DLSchedResult{Slot: sl, DLResValid: false})
		return
	}

	if cp.pool != nil {
		cp.pool.RunSlot(sl)
	}

	res := cp.sched.SlotIndication(sl, cp.cellIndex)
	if res == nil {
		cp.notifier.OnNewDownlinkSchedulerResults(phy.DLSchedResult{Slot: sl, DLResValid: false})
		return
	}

	cp.submitControl(sl, res)
	cp.submitData(sl, res)
	cp.notifier.OnNewUplinkSchedulerResults(phy.ULSchedResult{Opaque: res.UL.Opaque})
	cp.refreshBufferState(sl, res)
}

func (cp *CellProcessor) submitControl(sl slot.Point, res *scheduler.Result) {
	dl := phy.DLSchedResult{Slot: sl}

	for _, ssb := range res.DL.Broadcast.SSBInfo {
		dl.SSBPDUs = append(dl.SSBPDUs, assembleSSB(cp.pci, ssb))
	}
	for _, pdcch := range res.DL.DLPDCCHs {
		dl.PDCCHPDUs = append(dl.PDCCHPDUs, phy.PDCCHPDU{
			Payload: scheduler.EncodeDCI(pdcch),
			RNTI:    uint16(pdcch.RNTI),
		})
	}
	dl.DLResValid = len(dl.SSBPDUs) > 0 || len(dl.PDCCHPDUs) > 0

	cp.notifier.OnNewDownlinkSchedulerResults(dl)
}

func (cp *CellProcessor) submitData(sl slot.Point, res *scheduler.Result) {
	data := phy.DLDataResult{Slot: sl}

	siPending := 0
	for _, pdcch := range res.DL.DLPDCCHs {
		if pdcch.Type != scheduler.DCISIF10 {
			continue
		}
		if siPending >= len(res.DL.Broadcast.SIBs) {
			logger.MacLog.Panicw("SI PDCCH scheduled with no matching SIB payload", "cell", cp.cellIndex)
		}
		data.SIB1PDUs = append(data.SIB1PDUs, siPayload(res.DL.Broadcast.SIBs[siPending]))
		siPending++
	}

	for _, rar := range res.DL.RARGrants {
		data.RARPDUs = append(data.RARPDUs, assembleRAR(rar))
	}

	for _, grant := range res.DL.UEGrants {
		harqInfo, hasHARQ := findUEDCI(res.DL.DLPDCCHs, grant.CRNTI)
		for _, tb := range grant.TBs {
			payload, backlog := pullSDUs(cp.ueMgr, grant.CRNTI, tb)
			data.UEPDUs = append(data.UEPDUs, payload)
			for lcid, bsr := range backlog {
				cp.pendingBSR = append(cp.pendingBSR, scheduler.DLBufferStateIndication{
					RNTI: grant.CRNTI,
					LCID: lcid,
					BSR:  bsr,
				})
			}
			if cp.pool != nil && hasHARQ {
				id := harq.ID{
					UEIndex:          uint32(grant.CRNTI),
					HARQProcessID:    harqInfo.HARQProcessID,
					NewDataIndicator: harqInfo.NDI,
				}
				nofCodeblocks := uint32(len(payload))/bytesPerCodeblock + 1
				cp.pool.Reserve(sl, id, nofCodeblocks)
			}
		}
	}

	cp.notifier.OnNewDownlinkData(data)
}

// refreshBufferState reports the logical-channel backlog left behind by this
// slot's transmissions, once slot processing has otherwise finished. It runs
// last so the scheduler's next SlotIndication sees buffer occupancy as of
// after this slot's grants were served, not mid-assembly.
func (cp *CellProcessor) refreshBufferState(sl slot.Point, res *scheduler.Result) {
	for _, ind := range cp.pendingBSR {
		cp.sched.HandleDLBufferStateIndication(ind)
	}
	cp.pendingBSR = cp.pendingBSR[:0]
}

// findUEDCI locates the C-RNTI-addressed DCI carrying crnti's HARQ metadata.
func findUEDCI(pdcchs []scheduler.PDCCHDLInfo, crnti scheduler.RNTI) (scheduler.DCI10UERNTI, bool) {
	for _, pdcch := range pdcchs {
		if pdcch.Type == scheduler.DCIUEF10 && pdcch.RNTI == crnti {
			return pdcch.UEF10, true
		}
	}
	return scheduler.DCI10UERNTI{}, false
}

// siPayload is a stand-in SIB encoding: exact SIB1/SI-message ASN.1
// encoding is out of scope, so the transport block carries only its
// declared length as a marker.
func siPayload(sib scheduler.SIBInfo) []byte {
	return make([]byte, sib.TBSizeBytes)
}
