package main

import "github.com/theirongolddev/wealthpath/cmd"

func main() {
	cmd.Execute()
}
