// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package mac implements the MAC DL core pipeline (C4): per-cell slot
// processing that pulls a scheduling decision, assembles PHY-bound PDUs, and
// feeds RLC/scheduler feedback back for the next slot.
package mac

import (
	"github.com/omec-project/gnb-du/rlc"
	"github.com/omec-project/gnb-du/scheduler"
)

// minMACSDUSize is the smallest SDU worth pulling from RLC; below this a
// sub-header alone would not be worth the transport-block space.
const minMACSDUSize = 3

// UEManager resolves the RLC bearer serving a UE's logical channel. mac/
// never holds bearers itself; it only drives them during PDU assembly.
type UEManager interface {
	Bearer(crnti scheduler.RNTI, lcid uint8) (rlc.TxBearer, bool)
}
