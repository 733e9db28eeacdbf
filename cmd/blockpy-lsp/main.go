// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/jingwhale/blockpy/internal/lsp"
)

const lsName = "blockpy" // Name identifier for the language server

var (
	handler protocol.Handler
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	analyzerHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:            analyzerHandler.Initialize,
		Initialized:           analyzerHandler.Initialized,
		Shutdown:              analyzerHandler.Shutdown,
		SetTrace:              analyzerHandler.SetTrace,
		TextDocumentDidOpen:   analyzerHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  analyzerHandler.TextDocumentDidClose,
		TextDocumentDidChange: analyzerHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting blockpy LSP server...")

	// The server speaks LSP over standard input/output, which is how most
	// editors launch language servers.
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting blockpy LSP server:", err)
		os.Exit(1)
	}
}
