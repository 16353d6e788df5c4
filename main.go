package main

import (
	"os"

	"github.com/strandschat/chatloop/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
