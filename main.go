package main

import "github.com/KaramelBytes/llmstxt-cli/cmd"

func main() {
	cmd.Execute()
}
