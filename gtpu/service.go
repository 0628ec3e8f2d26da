// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package gtpu

import (
	"context"
	"fmt"
	"net"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/util"
	"github.com/wmnsk/go-gtp/gtpv1"
)

// DialUPlane opens the DU-side GTP-U user-plane socket bound to localAddr,
// ready to exchange PDUs with remoteAddr (typically a UPF's N3/F1-U peer).
func DialUPlane(ctx context.Context, localAddr, remoteAddr string) (*gtpv1.UPlaneConn, error) {
	local, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve local GTP-U address %s: %w", localAddr, err)
	}
	remote, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve remote GTP-U address %s: %w", remoteAddr, err)
	}
	conn, err := gtpv1.DialUPlane(ctx, local, remote)
	if err != nil {
		return nil, fmt.Errorf("dial GTP-U u-plane: %w", err)
	}
	return conn, nil
}

// Service reads PDUs off a GTP-U u-plane connection and hands them to a
// Demux for TEID-keyed dispatch.
type Service struct {
	conn  *gtpv1.UPlaneConn
	demux *Demux
}

// NewService builds a Service; the caller owns conn's lifetime.
func NewService(conn *gtpv1.UPlaneConn, demux *Demux) *Service {
	return &Service{conn: conn, demux: demux}
}

// ListenAndServe starts the read loop in its own goroutine.
func (s *Service) ListenAndServe() {
	go s.readLoop()
}

// readLoop reads raw GTPv1-U datagrams straight off the socket, rather than
// through ReadFromGTP, so the demultiplexer's own header parsing (TEID
// extraction, PDU session container/QFI decoding) runs on every arriving
// PDU instead of duplicating that work here.
func (s *Service) readLoop() {
	defer util.RecoverWithLog(logger.GtpuLog)

	buf := make([]byte, 65535)
	for {
		n, _, err := s.conn.ReadFrom(buf)
		if err != nil {
			logger.GtpuLog.Errorw("GTP-U read failed, stopping service", "error", err)
			return
		}
		raw := make([]byte, n)
		copy(raw, buf[:n])
		s.demux.HandleRawPDU(raw)
	}
}

// Close shuts down the underlying connection.
func (s *Service) Close() error {
	return s.conn.Close()
}
