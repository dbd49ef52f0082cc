package main

import "github.com/mcoot/catan-leaderboard/internal/cli"

func main() {
	cli.Execute()
}
