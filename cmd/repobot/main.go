// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

// Package main is the entry point for the repobot CLI.
package main

import "github.com/aws-powertools/repobot/cmd/repobot/commands"

func main() {
	commands.Execute()
}
