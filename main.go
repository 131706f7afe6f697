package main

import (
	"github.com/hangarhub/hangarctl/cmd"
	"github.com/hangarhub/hangarctl/internal/logger"
)

func main() {
	defer logger.Close()
	cmd.Execute()
}
