// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package gtpu implements the F1-U-facing GTP-U demultiplexer (C5): a
// TEID-keyed tunnel table that dispatches each arriving PDU onto its
// tunnel's own executor.
package gtpu

import (
	"sync"

	"github.com/omec-project/gnb-du/executor"
	"github.com/omec-project/gnb-du/gtpu/message"
	"github.com/omec-project/gnb-du/logger"
)

// PDUHandler receives a demultiplexed PDU on its tunnel's executor.
type PDUHandler interface {
	HandlePDU(teid uint32, payload []byte)
}

// PacketSink observes every PDU that resolves to a tunnel, before dispatch
// takes effect on the tunnel executor. Intended for passive capture (e.g. a
// pcap tee); it must not retain payload beyond the call without copying.
type PacketSink func(teid uint32, payload []byte)

type tunnel struct {
	exec    *executor.Executor
	handler PDUHandler
}

// Demux owns the TEID -> tunnel table. Safe for concurrent use.
type Demux struct {
	mu         sync.RWMutex
	tunnels    map[uint32]tunnel
	warnOnDrop bool
	sink       PacketSink
}

// NewDemux builds an empty demultiplexer. warnOnDrop controls whether
// dropped PDUs (unknown TEID, full tunnel queue, tunnel removed mid-flight)
// log at warning or debug level.
func NewDemux(warnOnDrop bool) *Demux {
	return &Demux{tunnels: make(map[uint32]tunnel), warnOnDrop: warnOnDrop}
}

// SetPacketSink installs (or clears, with nil) the passive capture hook.
func (d *Demux) SetPacketSink(sink PacketSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sink = sink
}

// AddTunnel registers handler to receive PDUs for teid, dispatched on exec.
// Returns false without registering if teid is already in use.
func (d *Demux) AddTunnel(teid uint32, exec *executor.Executor, handler PDUHandler) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tunnels[teid]; exists {
		return false
	}
	d.tunnels[teid] = tunnel{exec: exec, handler: handler}
	return true
}

// RemoveTunnel drops teid's registration, reporting whether one was present.
// A PDU already dispatched for teid may still complete or may be dropped;
// both are acceptable (spec's removal-race tolerance).
func (d *Demux) RemoveTunnel(teid uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tunnels[teid]; !exists {
		return false
	}
	delete(d.tunnels, teid)
	return true
}

// HandleRawPDU parses raw as a GTPv1-U T-PDU and demultiplexes it.
func (d *Demux) HandleRawPDU(raw []byte) {
	pkt, err := message.Parse(raw)
	if err != nil {
		logger.GtpuLog.Debugw("dropping unparseable GTP-U packet", "error", err)
		return
	}
	d.HandlePDU(pkt.TEID(), pkt.Payload())
}

// HandlePDU looks up teid's tunnel and defers delivery onto its executor.
func (d *Demux) HandlePDU(teid uint32, payload []byte) {
	d.mu.RLock()
	t, ok := d.tunnels[teid]
	d.mu.RUnlock()
	if !ok {
		d.logDrop(teid, "no tunnel registered")
		return
	}
	if !t.exec.Execute(func() { d.handlePDUImpl(teid, payload) }) {
		d.logDrop(teid, "tunnel executor queue full")
	}
}

// handlePDUImpl runs on the tunnel's executor. It re-looks-up teid before
// dispatch, since the tunnel may have been removed between HandlePDU's
// lookup and this task actually running.
func (d *Demux) handlePDUImpl(teid uint32, payload []byte) {
	d.mu.RLock()
	sink := d.sink
	d.mu.RUnlock()
	if sink != nil {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		sink(teid, cp)
	}

	d.mu.RLock()
	t, ok := d.tunnels[teid]
	d.mu.RUnlock()
	if !ok {
		d.logDrop(teid, "tunnel removed before dispatch")
		return
	}
	t.handler.HandlePDU(teid, payload)
}

func (d *Demux) logDrop(teid uint32, reason string) {
	if d.warnOnDrop {
		logger.GtpuLog.Warnw("dropping GTP-U PDU", "teid", teid, "reason", reason)
		return
	}
	logger.GtpuLog.Debugw("dropping GTP-U PDU", "teid", teid, "reason", reason)
}
