// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package mac

import (
	"encoding/binary"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/phy"
	"github.com/omec-project/gnb-du/scheduler"
)

// assembleSSB fills the PHY-facing SSB PDU for one scheduled SSB occasion.
// MIB payload encoding beyond identifying the cell/SSB is out of scope
// (spec.md's PHY channel-coding non-goal); this only needs to be a stable,
// decodable-by-this-stack placeholder.
func assembleSSB(pci uint16, ssb scheduler.SSBInfo) phy.SSBPDU {
	mib := make([]byte, 4)
	binary.BigEndian.PutUint16(mib[0:2], pci)
	mib[2] = ssb.SSBIndex
	return phy.SSBPDU{
		PCI:              pci,
		SSBIndex:         ssb.SSBIndex,
		SubcarrierOffset: 0,
		OffsetToPointA:   0,
		BetaPSSProfile:   0,
		MIB:              mib,
	}
}

// assembleRAR encodes a Random Access Response PDU carrying rar's grant.
func assembleRAR(rar scheduler.RARInfo) []byte {
	b := make([]byte, 4)
	b[0] = rar.RAPID
	binary.BigEndian.PutUint16(b[1:3], uint16(rar.TCRNTI))
	return b
}

// pullSDUs drains bearer for a transport block's logical-channel
// allocations, stopping once fewer than minMACSDUSize bytes remain in the
// budget (an SDU smaller than that is not worth a MAC sub-header). Returns
// the concatenated SDU payload and, per LCID, the bearer's post-pull
// backlog for scheduler feedback.
func pullSDUs(mgr UEManager, crnti scheduler.RNTI, tb scheduler.TBInfo) (payload []byte, backlog map[uint8]uint32) {
	backlog = make(map[uint8]uint32)
	for _, lc := range tb.LCList {
		bearer, ok := mgr.Bearer(crnti, lc.LCID)
		if !ok {
			logger.MacLog.Panicw("scheduler allocated a bearer that does not exist", "crnti", crnti, "lcid", lc.LCID)
		}
		remaining := lc.SchedBytes
		for remaining >= minMACSDUSize {
			sdu := bearer.OnNewTxSDU(remaining)
			if len(sdu) == 0 {
				break
			}
			payload = append(payload, sdu...)
			remaining -= uint32(len(sdu))
		}
		backlog[lc.LCID] = bearer.OnBufferStateUpdate()
	}
	return payload, backlog
}
