// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"fmt"
	"os"

	"github.com/omec-project/gnb-du/logger"
	"go.yaml.in/yaml/v4"
)

// GnbduConfig is the process-wide loaded configuration.
var GnbduConfig Config

// InitConfigFactory loads and parses the YAML config document at f.
func InitConfigFactory(f string) error {
	content, err := os.ReadFile(f)
	if err != nil {
		return err
	}

	GnbduConfig = Config{}
	if err = yaml.Unmarshal(content, &GnbduConfig); err != nil {
		return err
	}

	return nil
}

// CheckConfigVersion fails closed if the loaded config's version doesn't
// match what this build expects.
func CheckConfigVersion() error {
	currentVersion := GnbduConfig.getVersion()

	if currentVersion != gnbduExpectedConfigVersion {
		return fmt.Errorf("config version is [%s], but expected is [%s]",
			currentVersion, gnbduExpectedConfigVersion)
	}

	logger.CfgLog.Infof("config version [%s]", currentVersion)

	return nil
}
