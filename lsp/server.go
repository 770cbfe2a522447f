// Package lsp serves import and annotation removal as document formatting
// over the language server protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jurand/java/symbols"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "jurand"

var log = commonlog.GetLogger("jurand.lsp")

type Server struct {
	params  *symbols.Parameters
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.RWMutex
	documents map[protocol.DocumentUri]string
}

func NewServer(params *symbols.Parameters, version string) *Server {
	ls := &Server{
		params:    params,
		version:   version,
		documents: make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	log.Info("shutting down")
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.store(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.store(params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.documents, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.store(params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	ls.mu.RLock()
	text, ok := ls.documents[params.TextDocument.URI]
	ls.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return formattingEdits(text, ls.params)
}

func (ls *Server) store(uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.documents[uri] = text
	if path, err := uriToPath(uri); err == nil {
		log.Debugf("stored %s (%d bytes)", path, len(text))
	}
}

// formattingEdits returns a single edit replacing the whole of text with
// the pipeline's output, or no edits when nothing would be removed.
func formattingEdits(text string, params *symbols.Parameters) ([]protocol.TextEdit, error) {
	content := symbols.HandleContent([]byte(text), params)
	if len(content) >= len(text) {
		return nil, nil
	}
	end, err := endPosition(text)
	if err != nil {
		return nil, err
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   end,
		},
		NewText: string(content),
	}}, nil
}

// endPosition returns the position just past the last character of text,
// with the character offset counted in UTF-16 code units.
func endPosition(text string) (protocol.Position, error) {
	lines := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]

	units := 0
	for _, r := range last {
		if r >= 0x10000 && r <= utf8.MaxRune {
			units += 2
		} else {
			units++
		}
	}

	line, err := safecast.Conv[protocol.UInteger](lines)
	if err != nil {
		return protocol.Position{}, err
	}
	character, err := safecast.Conv[protocol.UInteger](units)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: line, Character: character}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
