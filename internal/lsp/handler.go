package lsp

import (
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jingwhale/blockpy/internal/analyzer"
)

// Handler implements the LSP server handlers for the analyzer. Documents
// are kept in memory with full-document sync; every change reanalyzes and
// republishes diagnostics.
type Handler struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]string
}

func NewHandler() *Handler {
	return &Handler{
		documents: make(map[protocol.DocumentUri]string),
	}
}

// Initialize advertises the server's capabilities to the client.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen analyzes a newly opened document
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	h.documents[params.TextDocument.URI] = params.TextDocument.Text
	h.mu.Unlock()

	h.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange reanalyzes after a full-document change
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	text, ok := wholeDocumentText(params.ContentChanges)
	if !ok {
		return nil
	}

	h.mu.Lock()
	h.documents[params.TextDocument.URI] = text
	h.mu.Unlock()

	h.publishDiagnostics(ctx, params.TextDocument.URI, text)
	return nil
}

// TextDocumentDidClose forgets the document
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.documents, params.TextDocument.URI)
	return nil
}

// wholeDocumentText extracts the replacement text from a full-sync change
// notification. Clients negotiated onto full sync send exactly one whole
// document event.
func wholeDocumentText(changes []any) (string, bool) {
	for _, change := range changes {
		switch event := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return event.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if event.Range == nil {
				return event.Text, true
			}
		}
	}
	return "", false
}

func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	report := analyzer.NewAnalyzer().AnalyzeSource(string(uri), text)
	diagnostics := ConvertReport(report)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
