// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/xdgmenu/cmd/xdgmenu"

func main() {
	cmd.Execute()
}
