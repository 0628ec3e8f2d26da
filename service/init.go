// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	gnbContext "github.com/omec-project/gnb-du/context"
	"github.com/omec-project/gnb-du/executor"
	"github.com/omec-project/gnb-du/factory"
	"github.com/omec-project/gnb-du/gtpu"
	"github.com/omec-project/gnb-du/harq"
	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/mac"
	"github.com/omec-project/gnb-du/phy"
	"github.com/omec-project/gnb-du/scheduler"
	"github.com/omec-project/gnb-du/scheduler/si"
	utilLogger "github.com/omec-project/util/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DU is the top-level DU process: it owns the scheduler, HARQ pool, GTP-U
// demultiplexer, and one MAC cell processor per configured cell.
type DU struct {
	sched *scheduler.Impl
	ueMgr *mac.InMemoryUEManager
	pool  *harq.Pool
	demux *gtpu.Demux

	ctrlExec *executor.Executor
	cells    map[uint8]*mac.CellProcessor

	gtpuSvc *gtpu.Service
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Config holds the parsed CLI arguments.
type Config struct {
	cfg string
}

var config Config

var duCli = []cli.Flag{
	&cli.StringFlag{
		Name:     "cfg",
		Usage:    "gnb-du config file",
		Required: true,
	},
}

// GetCliCmd returns the DU's CLI flag set.
func (*DU) GetCliCmd() []cli.Flag {
	return duCli
}

// Initialize loads config and sets log levels.
func (d *DU) Initialize(c *cli.Command) error {
	config = Config{cfg: c.String("cfg")}
	absPath, err := filepath.Abs(config.cfg)
	if err != nil {
		logger.CfgLog.Errorln(err)
		return err
	}
	if err := factory.InitConfigFactory(absPath); err != nil {
		return err
	}
	if err := factory.CheckConfigVersion(); err != nil {
		return err
	}
	d.setLogLevel()
	return nil
}

// setLogLevel configures this process's own log level plus the shared
// omec-project/util package's, which idgenerator logs through.
func (d *DU) setLogLevel() {
	cfg := factory.GnbduConfig.Configuration
	if cfg == nil || cfg.LogLevel == "" {
		logger.InitLog.Warnln("GNB-DU config without log level setting, default to [info] level")
		logger.SetLogLevel(zap.InfoLevel)
	} else if level, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		logger.InitLog.Warnf("log level [%s] is invalid, default to [info] level", cfg.LogLevel)
		logger.SetLogLevel(zap.InfoLevel)
	} else {
		logger.InitLog.Infof("GNB-DU log level is set to [%s] level", level)
		logger.SetLogLevel(level)
	}

	cfgLogger := factory.GnbduConfig.Logger
	if cfgLogger == nil || cfgLogger.Util == nil || cfgLogger.Util.DebugLevel == "" {
		return
	}
	if level, err := zapcore.ParseLevel(cfgLogger.Util.DebugLevel); err == nil {
		utilLogger.SetLogLevel(level)
	}
}

// FilterCli returns CLI args for flags.
func (d *DU) FilterCli(c *cli.Command) (args []string) {
	for _, flag := range d.GetCliCmd() {
		name := flag.Names()[0]
		value := fmt.Sprint(c.Generic(name))
		if value == "" {
			continue
		}
		args = append(args, "--"+name, value)
	}
	return args
}

// Start builds the scheduler, HARQ pool, GTP-U demux and per-cell MAC
// processors from configuration, brings every cell up, and blocks until a
// termination signal arrives.
func (d *DU) Start() {
	logger.InitLog.Infoln("server started")

	var ctx context.Context
	ctx, d.cancel = context.WithCancel(context.Background())
	defer d.cancel()

	cfg := factory.GnbduConfig.Configuration
	if cfg == nil {
		logger.InitLog.Errorln("no configuration loaded")
		return
	}

	d.sched = scheduler.NewImpl()
	d.ueMgr = mac.NewInMemoryUEManager()
	d.pool = harq.New(4096, cfg.ExpireTimeoutSlots)
	d.demux = gtpu.NewDemux(cfg.WarnOnDrop)
	d.ctrlExec = executor.New("control", 64)
	d.cells = make(map[uint8]*mac.CellProcessor)

	for _, cellCfg := range cfg.Cells {
		d.bringUpCell(cellCfg, cfg)
	}

	if cfg.GtpBindAddress != "" && cfg.UpfAddress != "" {
		if err := d.startGTPU(ctx, cfg); err != nil {
			logger.InitLog.Errorf("start GTP-U service failed: %+v", err)
			return
		}
		logger.InitLog.Infoln("GTP-U service running")
	}

	logger.InitLog.Infoln("GNB-DU running")

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel
	d.stop()
}

func (d *DU) bringUpCell(cellCfg factory.CellConfig, cfg *factory.Configuration) {
	messages := make([]si.MessageConfig, 0, len(cellCfg.SI.Messages))
	for _, m := range cellCfg.SI.Messages {
		messages = append(messages, si.MessageConfig{PeriodRadioFrames: m.PeriodRadioFrames, MsgLenBytes: m.MsgLenBytes})
	}

	schedCellCfg := scheduler.CellConfig{
		CellIndex:     cellCfg.CellIndex,
		PCI:           cellCfg.PCI,
		SlotsPerFrame: cellCfg.SlotsPerFrame,
		PDSCHBWPPRBs:  cellCfg.PDSCHBWPPRBs,
		PDCCHTotalCCE: cellCfg.PDCCHTotalCCE,
		SI: si.Config{
			WindowLenSlots: cellCfg.SI.WindowLenSlots,
			Messages:       messages,
		},
		SIExpert: si.ExpertConfig{
			MCSIndex:            cellCfg.SI.MCSIndex,
			DCIAggregationLevel: cellCfg.SI.AggregationLvl,
			DMRSOverheadPerPRB:  cellCfg.SI.DMRSOverhead,
			OFDMSymbolsPerPDSCH: cellCfg.SI.SymbolsPerPDSCH,
		},
		SSBPeriodSlots: cellCfg.SSBPeriodSlots,
	}

	if !d.sched.HandleCellConfigurationRequest(schedCellCfg) {
		logger.InitLog.Errorf("cell configuration rejected: cell=%d", cellCfg.CellIndex)
		return
	}
	gnbContext.Self().NewCellContext(cellCfg.CellIndex, cellCfg.PCI)

	queueLen := cfg.CellExecutorQueueLen
	if queueLen == 0 {
		queueLen = 64
	}
	cellExec := executor.New(fmt.Sprintf("cell-%d", cellCfg.CellIndex), queueLen)
	notifier := &loggingNotifier{cellIndex: cellCfg.CellIndex}
	cp := mac.NewCellProcessor(cellCfg.CellIndex, cellCfg.PCI, d.sched, notifier, d.ueMgr, d.pool, cellExec, d.ctrlExec)
	d.cells[cellCfg.CellIndex] = cp

	done := make(chan struct{})
	if !cp.Start(done) {
		logger.InitLog.Errorf("failed to activate cell=%d: cell executor busy", cellCfg.CellIndex)
		return
	}
	<-done
	logger.InitLog.Infof("cell=%d activated", cellCfg.CellIndex)
}

func (d *DU) startGTPU(ctx context.Context, cfg *factory.Configuration) error {
	conn, err := gtpu.DialUPlane(ctx, cfg.GtpBindAddress, cfg.UpfAddress)
	if err != nil {
		return err
	}
	d.gtpuSvc = gtpu.NewService(conn, d.demux)
	d.gtpuSvc.ListenAndServe()
	return nil
}

func (d *DU) stop() {
	logger.InitLog.Infoln("stopping services")
	for _, cp := range d.cells {
		done := make(chan struct{})
		if cp.Stop(done) {
			<-done
		}
	}
	if d.gtpuSvc != nil {
		if err := d.gtpuSvc.Close(); err != nil {
			logger.InitLog.Errorf("closing GTP-U service failed: %+v", err)
		}
	}
	d.ctrlExec.Stop()
	time.Sleep(200 * time.Millisecond)
	os.Exit(0)
}

// loggingNotifier is the DU's default phy.CellNotifier: it observes what
// would otherwise be handed to a real L1/FAPI driver.
type loggingNotifier struct {
	cellIndex uint8
}

func (n *loggingNotifier) OnNewDownlinkSchedulerResults(res phy.DLSchedResult) {
	logger.MacLog.Debugw("dl scheduler result", "cell", n.cellIndex, "slot", res.Slot, "valid", res.DLResValid)
}

func (n *loggingNotifier) OnNewDownlinkData(res phy.DLDataResult) {
	logger.MacLog.Debugw("dl data", "cell", n.cellIndex, "slot", res.Slot,
		"sib1", len(res.SIB1PDUs), "rar", len(res.RARPDUs), "ue", len(res.UEPDUs))
}

func (n *loggingNotifier) OnNewUplinkSchedulerResults(res phy.ULSchedResult) {
	logger.MacLog.Debugw("ul scheduler result", "cell", n.cellIndex)
}
