// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package executor

// DispatchAndResumeOn runs mutate on target, then runs the resulting
// resumption task on resumeOn. This is the two-hop async handshake spec.md
// §4.4/§9 describes for the MAC cell processor's start()/stop(): dispatch to
// the cell executor to flip state, then resume on the control executor.
//
// done, if non-nil, is closed once the resumption task has run, letting a
// caller block on completion without turning the executor model itself into
// a blocking one.
func DispatchAndResumeOn(target, resumeOn *Executor, mutate func(), done chan<- struct{}) bool {
	return target.Execute(func() {
		mutate()
		resumeOn.Execute(func() {
			if done != nil {
				close(done)
			}
		})
	})
}
