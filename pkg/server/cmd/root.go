/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"os"
)

// Version is populated during link time
var Version = "master"

func rootCmd() {
	fmt.Printf(`tripnote server - serves shared trips

Usage:
  tripnote-server [command] [flags]

Available commands:
  start: Start the server (use 'tripnote-server start --help' for flags)
  share: Manage share links (use 'tripnote-server share' for subcommands)
  version: Print the version
`)
}

func versionCmd() {
	fmt.Printf("tripnote-server-%s\n", Version)
}

// Execute is the main entry point for the CLI
func Execute() {
	if len(os.Args) < 2 {
		rootCmd()
		return
	}

	cmd := os.Args[1]

	switch cmd {
	case "start":
		startCmd(os.Args[2:])
	case "share":
		shareCmd(os.Args[2:], os.Stdin)
	case "version":
		versionCmd()
	default:
		fmt.Printf("Unknown command %s\n", cmd)
		rootCmd()
		os.Exit(1)
	}
}
