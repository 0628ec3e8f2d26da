// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/omec-project/gnb-du/logger"
	"github.com/omec-project/gnb-du/service"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var DU = &service.DU{}

var appLog *zap.SugaredLogger

func init() {
	appLog = logger.AppLog
}

func main() {
	cmd := &cli.Command{
		Name:  "gnb-du",
		Usage: "--cfg gnb-du configuration file",
		Flags: DU.GetCliCmd(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return action(c)
		},
	}
	appLog.Infoln(cmd.Name)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		appLog.Errorf("gnb-du run error: %v", err)
	}
}

func action(c *cli.Command) error {
	if err := DU.Initialize(c); err != nil {
		logger.CfgLog.Errorf("%+v", err)
		return fmt.Errorf("failed to initialize")
	}

	DU.Start()

	return nil
}
