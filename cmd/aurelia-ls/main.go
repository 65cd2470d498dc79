package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aurelia/aurelia-ls-sub004/lsp"
)

func main() {
	server, err := lsp.NewServer()
	if err != nil {
		log.Fatalf("failed to create LSP server: %v", err)
	}

	if err := server.RunStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
