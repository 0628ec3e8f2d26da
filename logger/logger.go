// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	AppLog      *zap.SugaredLogger
	InitLog     *zap.SugaredLogger
	CfgLog      *zap.SugaredLogger
	CtxLog      *zap.SugaredLogger
	MacLog      *zap.SugaredLogger
	SchedLog    *zap.SugaredLogger
	SiLog       *zap.SugaredLogger
	PoolLog     *zap.SugaredLogger
	GtpuLog     *zap.SugaredLogger
	UtilLog     *zap.SugaredLogger
	atomicLevel zap.AtomicLevel
)

func init() {
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	config := zap.Config{
		Level:            atomicLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Encoder configuration
	encCfg := &config.EncoderConfig
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = "caller"
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.MessageKey = "message"
	encCfg.StacktraceKey = ""

	var err error
	log, err = config.Build()
	if err != nil {
		panic(err)
	}

	// Assign sugared loggers for each subsystem.
	AppLog = log.Sugar().With("component", "GNB-DU", "category", "App")
	InitLog = log.Sugar().With("component", "GNB-DU", "category", "Init")
	CfgLog = log.Sugar().With("component", "GNB-DU", "category", "CFG")
	CtxLog = log.Sugar().With("component", "GNB-DU", "category", "Context")
	MacLog = log.Sugar().With("component", "GNB-DU", "category", "MAC")
	SchedLog = log.Sugar().With("component", "GNB-DU", "category", "SCHED")
	SiLog = log.Sugar().With("component", "GNB-DU", "category", "SI")
	PoolLog = log.Sugar().With("component", "GNB-DU", "category", "POOL")
	GtpuLog = log.Sugar().With("component", "GNB-DU", "category", "GTPU")
	UtilLog = log.Sugar().With("component", "GNB-DU", "category", "Util")
}

// GetLogger returns the base zap.Logger.
func GetLogger() *zap.Logger {
	return log
}

// SetLogLevel sets the log level (panic|fatal|error|warn|info|debug).
func SetLogLevel(level zapcore.Level) {
	InitLog.Infoln("set log level:", level)
	atomicLevel.SetLevel(level)
}
