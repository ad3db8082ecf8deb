// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"gitlab.clyso.com/clyso/driveguard/pkg/commands"
)

func main() {
	commands.Execute()
}
