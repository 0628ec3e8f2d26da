// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"encoding/binary"
	"fmt"

	"github.com/omec-project/gnb-du/logger"
)

// PackDCI10SIRNTI serializes a DCI format 1_0 / SI-RNTI payload. The bit
// layout is a compact, self-consistent encoding (not the literal 3GPP bit
// field packing, which belongs to the out-of-scope PHY channel coding); it
// only needs to round-trip (spec.md R1).
func PackDCI10SIRNTI(d DCI10SIRNTI) []byte {
	b := make([]byte, 7)
	binary.BigEndian.PutUint32(b[0:4], d.FrequencyResource)
	b[4] = d.TimeResource
	b[5] = d.MCS
	b[6] = d.SIIndicator
	return b
}

// UnpackDCI10SIRNTI is PackDCI10SIRNTI's inverse.
func UnpackDCI10SIRNTI(b []byte) (DCI10SIRNTI, error) {
	if len(b) != 7 {
		return DCI10SIRNTI{}, fmt.Errorf("dci 1_0 si-rnti: expected 7 bytes, got %d", len(b))
	}
	return DCI10SIRNTI{
		FrequencyResource: binary.BigEndian.Uint32(b[0:4]),
		TimeResource:      b[4],
		MCS:               b[5],
		SIIndicator:       b[6],
	}, nil
}

// PackDCI10RARNTI serializes a DCI format 1_0 / RA-RNTI payload.
func PackDCI10RARNTI(d DCI10RARNTI) []byte {
	b := make([]byte, 6)
	binary.BigEndian.PutUint32(b[0:4], d.FrequencyResource)
	b[4] = d.TimeResource
	b[5] = d.MCS
	return b
}

// UnpackDCI10RARNTI is PackDCI10RARNTI's inverse.
func UnpackDCI10RARNTI(b []byte) (DCI10RARNTI, error) {
	if len(b) != 6 {
		return DCI10RARNTI{}, fmt.Errorf("dci 1_0 ra-rnti: expected 6 bytes, got %d", len(b))
	}
	return DCI10RARNTI{
		FrequencyResource: binary.BigEndian.Uint32(b[0:4]),
		TimeResource:      b[4],
		MCS:               b[5],
	}, nil
}

// PackDCIUEF10 serializes a DCI format 1_0 / C-RNTI payload.
func PackDCIUEF10(d DCI10UERNTI) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], d.FrequencyResource)
	b[4] = d.TimeResource
	b[5] = d.MCS
	if d.NDI {
		b[6] = 1
	}
	b[7] = d.HARQProcessID
	return b
}

// UnpackDCIUEF10 is PackDCIUEF10's inverse.
func UnpackDCIUEF10(b []byte) (DCI10UERNTI, error) {
	if len(b) != 8 {
		return DCI10UERNTI{}, fmt.Errorf("dci 1_0 ue-rnti: expected 8 bytes, got %d", len(b))
	}
	return DCI10UERNTI{
		FrequencyResource: binary.BigEndian.Uint32(b[0:4]),
		TimeResource:      b[4],
		MCS:               b[5],
		NDI:               b[6] != 0,
		HARQProcessID:     b[7],
	}, nil
}

// EncodeDCI packs pdcch's payload according to its DCI type. An unknown type
// is a scheduler contract violation and is fatal (spec.md §4.4 step 2, §7
// tier 1).
func EncodeDCI(pdcch PDCCHDLInfo) []byte {
	switch pdcch.Type {
	case DCISIF10:
		return PackDCI10SIRNTI(pdcch.SIF10)
	case DCIRAF10:
		return PackDCI10RARNTI(pdcch.RAF10)
	case DCIUEF10:
		return PackDCIUEF10(pdcch.UEF10)
	default:
		logger.MacLog.Panicw("invalid DCI format from scheduler", "type", pdcch.Type)
		return nil
	}
}
