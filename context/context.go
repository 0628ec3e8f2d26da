// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"math"
	"sync"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/util/idgenerator"
)

var self = GNBContext{}

// GNBContext holds the DU's process-wide shared state: the set of
// configured cells and the set of UEs currently known to the DU, keyed the
// way the scheduler and MAC address them (cell index, UE index, C-RNTI).
type GNBContext struct {
	ueIndexGenerator *idgenerator.IDGenerator

	cells sync.Map // map[uint8]*CellContext, CellIndex as key
	ues   sync.Map // map[uint32]*UEContext, UEIndex as key
	crnti sync.Map // map[uint16]uint32, C-RNTI -> UEIndex
}

// CellContext is the DU-wide record of one configured cell.
type CellContext struct {
	CellIndex uint8
	PCI       uint16
}

// UEContext is the DU-wide record of one UE known to the DU.
type UEContext struct {
	UEIndex   uint32
	CRNTI     uint16
	CellIndex uint8
}

func init() {
	self.ueIndexGenerator = idgenerator.NewGenerator(1, math.MaxUint32)
}

// Self returns the DU's process-wide context.
func Self() *GNBContext {
	return &self
}

// NewCellContext registers cell and returns its context record.
func (c *GNBContext) NewCellContext(cellIndex uint8, pci uint16) *CellContext {
	cell := &CellContext{CellIndex: cellIndex, PCI: pci}
	c.cells.Store(cellIndex, cell)
	return cell
}

// DeleteCellContext removes cellIndex's record.
func (c *GNBContext) DeleteCellContext(cellIndex uint8) {
	c.cells.Delete(cellIndex)
}

// CellContextLoad looks up cellIndex's record.
func (c *GNBContext) CellContextLoad(cellIndex uint8) (*CellContext, bool) {
	v, ok := c.cells.Load(cellIndex)
	if !ok {
		return nil, false
	}
	return v.(*CellContext), true
}

// NewUEContext allocates a UE index and registers a UE context for it.
func (c *GNBContext) NewUEContext(crnti uint16, cellIndex uint8) *UEContext {
	id, err := c.ueIndexGenerator.Allocate()
	if err != nil {
		logger.CtxLog.Errorf("allocate UE index failed: %+v", err)
		return nil
	}
	ue := &UEContext{UEIndex: uint32(id), CRNTI: crnti, CellIndex: cellIndex}
	c.ues.Store(ue.UEIndex, ue)
	c.crnti.Store(crnti, ue.UEIndex)
	return ue
}

// DeleteUEContext removes ueIndex's record and its C-RNTI mapping.
func (c *GNBContext) DeleteUEContext(ueIndex uint32) {
	if v, ok := c.ues.Load(ueIndex); ok {
		c.crnti.Delete(v.(*UEContext).CRNTI)
	}
	c.ues.Delete(ueIndex)
	c.ueIndexGenerator.FreeID(int64(ueIndex))
}

// UEContextLoad looks up a UE by its DU-internal index.
func (c *GNBContext) UEContextLoad(ueIndex uint32) (*UEContext, bool) {
	v, ok := c.ues.Load(ueIndex)
	if !ok {
		return nil, false
	}
	return v.(*UEContext), true
}

// UEContextLoadByCRNTI looks up a UE by its C-RNTI.
func (c *GNBContext) UEContextLoadByCRNTI(crnti uint16) (*UEContext, bool) {
	v, ok := c.crnti.Load(crnti)
	if !ok {
		return nil, false
	}
	return c.UEContextLoad(v.(uint32))
}
