// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

// Package message wraps GTPv1-U T-PDU parsing for the DU's uplink F1-U
// path: TEID extraction and, when present, the PDU session container
// extension header carrying QFI.
package message

import (
	"errors"

	gtpv1msg "github.com/wmnsk/go-gtp/gtpv1/message"
)

// PDU session container extension header content types (TS 38.415 §5.5.2).
const (
	DLPDUSessionInfoType = 0x00
	ULPDUSessionInfoType = 0x10
)

// TPDUPacket is a parsed GTPv1-U T-PDU.
type TPDUPacket struct {
	tpdu   *gtpv1msg.TPDU
	hasQoS bool
	qfi    uint8
}

// Parse decodes raw as a GTPv1-U message and requires it to be a T-PDU.
func Parse(raw []byte) (*TPDUPacket, error) {
	msg, err := gtpv1msg.Parse(raw)
	if err != nil {
		return nil, err
	}
	tpdu, ok := msg.(*gtpv1msg.TPDU)
	if !ok {
		return nil, errors.New("gtpu message: not a T-PDU")
	}
	p := &TPDUPacket{tpdu: tpdu}
	if tpdu.HasExtensionHeader() {
		p.parseExtensionHeaders()
	}
	return p, nil
}

func (p *TPDUPacket) parseExtensionHeaders() {
	for _, eh := range p.tpdu.ExtensionHeaders {
		if eh.Type != gtpv1msg.ExtHeaderTypePDUSessionContainer {
			continue
		}
		if len(eh.Content) < 2 {
			continue
		}
		p.hasQoS = true
		p.qfi = eh.Content[1] & 0x3F
	}
}

// TEID returns the packet's tunnel endpoint identifier.
func (p *TPDUPacket) TEID() uint32 {
	return p.tpdu.TEID()
}

// Payload returns the T-PDU's user-plane payload.
func (p *TPDUPacket) Payload() []byte {
	return p.tpdu.Payload
}

// HasQoS reports whether a PDU session container extension header was present.
func (p *TPDUPacket) HasQoS() bool {
	return p.hasQoS
}

// QFI returns the parsed QoS flow identifier, valid only if HasQoS.
func (p *TPDUPacket) QFI() uint8 {
	return p.qfi
}
