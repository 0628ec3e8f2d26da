// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import "testing"

func TestDCI10SIRNTIRoundTrip(t *testing.T) {
	d := DCI10SIRNTI{FrequencyResource: 0x1234, TimeResource: 3, MCS: 9, SIIndicator: 1}
	got, err := UnpackDCI10SIRNTI(PackDCI10SIRNTI(d))
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if got != d {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestDCI10RARNTIRoundTrip(t *testing.T) {
	d := DCI10RARNTI{FrequencyResource: 0xABCD, TimeResource: 1, MCS: 5}
	got, err := UnpackDCI10RARNTI(PackDCI10RARNTI(d))
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if got != d {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestDCIUEF10RoundTrip(t *testing.T) {
	d := DCI10UERNTI{FrequencyResource: 0x1111, TimeResource: 2, MCS: 12, NDI: true, HARQProcessID: 4}
	got, err := UnpackDCIUEF10(PackDCIUEF10(d))
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if got != d {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestEncodeDCIDispatchesByType(t *testing.T) {
	si := EncodeDCI(PDCCHDLInfo{Type: DCISIF10, SIF10: DCI10SIRNTI{MCS: 7}})
	if len(si) != 7 {
		t.Fatalf("expected 7-byte SI-RNTI payload, got %d", len(si))
	}
	ra := EncodeDCI(PDCCHDLInfo{Type: DCIRAF10, RAF10: DCI10RARNTI{MCS: 7}})
	if len(ra) != 6 {
		t.Fatalf("expected 6-byte RA-RNTI payload, got %d", len(ra))
	}
}

func TestEncodeDCIPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown DCI type")
		}
	}()
	EncodeDCI(PDCCHDLInfo{Type: DCIType(99)})
}
