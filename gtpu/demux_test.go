// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package gtpu

import (
	"sync"
	"testing"
	"time"

	"github.com/omec-project/gnb-du/executor"
)

type recordingHandler struct {
	mu      sync.Mutex
	pdus    [][]byte
	handled chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{handled: make(chan struct{}, 16)}
}

func (h *recordingHandler) HandlePDU(teid uint32, payload []byte) {
	h.mu.Lock()
	h.pdus = append(h.pdus, payload)
	h.mu.Unlock()
	h.handled <- struct{}{}
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pdus)
}

func TestHandlePDUDispatchesToRegisteredTunnel(t *testing.T) {
	d := NewDemux(true)
	exec := executor.New("tunnel-1", 8)
	t.Cleanup(exec.Stop)

	h := newRecordingHandler()
	d.AddTunnel(42, exec, h)

	d.HandlePDU(42, []byte("hello"))

	select {
	case <-h.handled:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for handler dispatch")
	}
	if h.count() != 1 {
		t.Fatalf("expected 1 PDU delivered, got %d", h.count())
	}
}

func TestAddTunnelRejectsDuplicateTEID(t *testing.T) {
	d := NewDemux(true)
	exec1 := executor.New("tunnel-a", 8)
	exec2 := executor.New("tunnel-b", 8)
	t.Cleanup(exec1.Stop)
	t.Cleanup(exec2.Stop)

	if !d.AddTunnel(1, exec1, newRecordingHandler()) {
		t.Fatalf("expected first AddTunnel to succeed")
	}
	if d.AddTunnel(1, exec2, newRecordingHandler()) {
		t.Fatalf("expected duplicate AddTunnel for the same TEID to fail")
	}
}

func TestRemoveTunnelReportsPresence(t *testing.T) {
	d := NewDemux(true)
	exec := executor.New("tunnel-remove", 8)
	t.Cleanup(exec.Stop)

	d.AddTunnel(2, exec, newRecordingHandler())
	if !d.RemoveTunnel(2) {
		t.Fatalf("expected RemoveTunnel to report the tunnel was present")
	}
	if d.RemoveTunnel(2) {
		t.Fatalf("expected second RemoveTunnel to report the tunnel was already gone")
	}
}

func TestHandlePDUDropsUnknownTEID(t *testing.T) {
	d := NewDemux(false)
	// no tunnels registered; must not panic.
	d.HandlePDU(7, []byte("x"))
}

func TestHandlePDUReLooksUpAfterRemoval(t *testing.T) {
	d := NewDemux(true)
	exec := executor.New("tunnel-race", 1)
	t.Cleanup(exec.Stop)

	h := newRecordingHandler()
	d.AddTunnel(99, exec, h)

	// Block the executor so the dispatched task cannot run until after
	// RemoveTunnel executes, simulating the add -> enqueue -> remove race.
	block := make(chan struct{})
	if !exec.Execute(func() { <-block }) {
		t.Fatalf("failed to enqueue blocking task")
	}

	d.HandlePDU(99, []byte("racy"))
	d.RemoveTunnel(99)
	close(block)

	// The dispatched task now runs, re-looks-up teid 99, finds it gone, and
	// drops the PDU rather than calling the handler.
	time.Sleep(50 * time.Millisecond)
	if h.count() != 0 {
		t.Fatalf("expected PDU to be dropped after tunnel removal, got %d delivered", h.count())
	}
}

func TestPacketSinkSeesPDUBeforeSecondLookup(t *testing.T) {
	d := NewDemux(true)
	exec := executor.New("tunnel-sink", 8)
	t.Cleanup(exec.Stop)

	h := newRecordingHandler()
	d.AddTunnel(5, exec, h)

	var sunk []byte
	done := make(chan struct{})
	d.SetPacketSink(func(teid uint32, payload []byte) {
		sunk = payload
		close(done)
	})

	original := []byte("payload")
	d.HandlePDU(5, original)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for sink")
	}
	if string(sunk) != "payload" {
		t.Fatalf("expected sink to observe payload, got %q", sunk)
	}
	// mutating the original slice must not affect what the sink already saw.
	original[0] = 'X'
	if sunk[0] == 'X' {
		t.Fatalf("expected sink to receive a defensive copy")
	}
}
