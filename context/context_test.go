// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import "testing"

func TestNewCellContextRegistersAndLoads(t *testing.T) {
	c := Self()
	c.NewCellContext(3, 501)
	defer c.DeleteCellContext(3)

	got, ok := c.CellContextLoad(3)
	if !ok {
		t.Fatalf("expected cell 3 to be registered")
	}
	if got.PCI != 501 {
		t.Fatalf("expected PCI 501, got %d", got.PCI)
	}
}

func TestDeleteCellContextRemovesRecord(t *testing.T) {
	c := Self()
	c.NewCellContext(4, 10)
	c.DeleteCellContext(4)

	if _, ok := c.CellContextLoad(4); ok {
		t.Fatalf("expected cell 4 to be gone after delete")
	}
}

func TestNewUEContextRegistersUnderBothIndexAndCRNTI(t *testing.T) {
	c := Self()
	ue := c.NewUEContext(0x4601, 0)
	if ue == nil {
		t.Fatalf("expected a UE context, got nil")
	}
	defer c.DeleteUEContext(ue.UEIndex)

	byIndex, ok := c.UEContextLoad(ue.UEIndex)
	if !ok || byIndex.CRNTI != 0x4601 {
		t.Fatalf("expected UE lookup by index to find CRNTI 0x4601, got %+v ok=%v", byIndex, ok)
	}

	byCRNTI, ok := c.UEContextLoadByCRNTI(0x4601)
	if !ok || byCRNTI.UEIndex != ue.UEIndex {
		t.Fatalf("expected UE lookup by CRNTI to find index %d, got %+v ok=%v", ue.UEIndex, byCRNTI, ok)
	}
}

func TestDeleteUEContextRemovesBothMappings(t *testing.T) {
	c := Self()
	ue := c.NewUEContext(0x4602, 0)
	if ue == nil {
		t.Fatalf("expected a UE context, got nil")
	}
	c.DeleteUEContext(ue.UEIndex)

	if _, ok := c.UEContextLoad(ue.UEIndex); ok {
		t.Fatalf("expected UE index to be gone after delete")
	}
	if _, ok := c.UEContextLoadByCRNTI(0x4602); ok {
		t.Fatalf("expected CRNTI mapping to be gone after delete")
	}
}
