// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/platemap/platemap/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
