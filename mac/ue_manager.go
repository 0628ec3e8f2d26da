// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package mac

import (
	"sync"

	"github.com/omec-project/gnb-du/rlc"
	"github.com/omec-project/gnb-du/scheduler"
)

type bearerKey struct {
	crnti scheduler.RNTI
	lcid  uint8
}

// InMemoryUEManager is the reference UEManager: a bearer table keyed by
// (C-RNTI, LCID). Callers on the cell executor own exclusivity; the mutex
// only guards against configuration requests arriving on other executors.
type InMemoryUEManager struct {
	mu      sync.RWMutex
	bearers map[bearerKey]rlc.TxBearer
}

// NewInMemoryUEManager builds an empty bearer table.
func NewInMemoryUEManager() *InMemoryUEManager {
	return &InMemoryUEManager{bearers: make(map[bearerKey]rlc.TxBearer)}
}

// AddBearer registers the TX bearer serving (crnti, lcid).
func (m *InMemoryUEManager) AddBearer(crnti scheduler.RNTI, lcid uint8, bearer rlc.TxBearer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bearers[bearerKey{crnti, lcid}] = bearer
}

// RemoveUE drops every bearer registered for crnti.
func (m *InMemoryUEManager) RemoveUE(crnti scheduler.RNTI) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.bearers {
		if k.crnti == crnti {
			delete(m.bearers, k)
		}
	}
}

// Bearer implements UEManager.
func (m *InMemoryUEManager) Bearer(crnti scheduler.RNTI, lcid uint8) (rlc.TxBearer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bearers[bearerKey{crnti, lcid}]
	return b, ok
}
