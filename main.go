package main

import "github.com/brogergvhs/yomikazu/cmd"

func main() {
	cmd.Execute()
}
