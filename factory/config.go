// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"github.com/omec-project/util/logger"
)

const gnbduExpectedConfigVersion = "1.0.0"

// Config is the top-level YAML configuration document.
type Config struct {
	Info          *Info          `yaml:"info"`
	Configuration *Configuration `yaml:"configuration"`
	Logger        *logger.Logger `yaml:"logger"`
}

// Info identifies the config document itself.
type Info struct {
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Configuration is the DU's operational configuration.
type Configuration struct {
	LogLevel string `yaml:"logLevel"`

	Cells []CellConfig `yaml:"cells"`

	GtpBindAddress string `yaml:"gtpBindAddress"`
	UpfAddress     string `yaml:"upfAddress"`

	// ExpireTimeoutSlots bounds how long a reserved HARQ soft buffer may go
	// un-refreshed before the pool reclaims it.
	ExpireTimeoutSlots uint32 `yaml:"expireTimeoutSlots"`

	// WarnOnDrop selects warning- vs debug-level logging for GTP-U PDUs
	// dropped by the demultiplexer (unknown TEID, full queue, removal race).
	WarnOnDrop bool `yaml:"warnOnDrop"`

	// CellExecutorQueueLen and TunnelExecutorQueueLen size each cell's and
	// each GTP-U tunnel's non-blocking task queue.
	CellExecutorQueueLen   int `yaml:"cellExecutorQueueLen"`
	TunnelExecutorQueueLen int `yaml:"tunnelExecutorQueueLen"`
}

// CellConfig is one cell's static radio/scheduler configuration.
type CellConfig struct {
	CellIndex     uint8  `yaml:"cellIndex"`
	PCI           uint16 `yaml:"pci"`
	SlotsPerFrame uint16 `yaml:"slotsPerFrame"`
	PDSCHBWPPRBs  uint16 `yaml:"pdschBwpPrbs"`
	PDCCHTotalCCE uint8  `yaml:"pdcchTotalCce"`

	SSBPeriodSlots uint32 `yaml:"ssbPeriodSlots"`

	SI SIConfig `yaml:"si"`
}

// SIConfig is the SI window sub-scheduler's configuration for one cell.
type SIConfig struct {
	WindowLenSlots  uint32            `yaml:"windowLenSlots"`
	Messages        []SIMessageConfig `yaml:"messages"`
	MCSIndex        uint8             `yaml:"mcsIndex"`
	AggregationLvl  uint8             `yaml:"dciAggregationLevel"`
	DMRSOverhead    uint32            `yaml:"dmrsOverheadPerPrb"`
	SymbolsPerPDSCH uint8             `yaml:"ofdmSymbolsPerPdsch"`
}

// SIMessageConfig configures one broadcast SI message's periodicity/size.
type SIMessageConfig struct {
	PeriodRadioFrames uint32 `yaml:"periodRadioFrames"`
	MsgLenBytes       uint32 `yaml:"msgLenBytes"`
}

func (c *Config) getVersion() string {
	if c.Info != nil && c.Info.Version != "" {
		return c.Info.Version
	}
	return ""
}
