// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

var builtinArt = []string{
	`   _____ _ _       _____ _          _ _
  / ____(_) |     / ____| |        | | |
 | (___  _| |_ __| (___ | |__   ___| | |
  \___ \| | __/ _ \___ \| '_ \ / _ \ | |
  ____) | | ||  __/___) | | | |  __/ | |
 |_____/|_|\__\___|____/|_| |_|\___|_|_|`,

	`    .--.
   |o_o |
   |:_/ |
  //   \ \
 (|     | )
/'\_   _/'\
\___)=(___/`,

	`   ( (
    ) )
  ........
  |      |]
  \      /
   '----'`,

	`  /\_/\
 ( o.o )
  > ^ <`,
}
