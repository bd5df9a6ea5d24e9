// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package main

import "github.com/mpassid/authdata-service/cmd"

func main() {
	cmd.Execute()
}
