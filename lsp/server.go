// Package lsp serves search-query diagnostics over the language server
// protocol, so editors can lint query files as they are typed.
package lsp

import (
	"net/url"
	"os"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/platform"
)

const lsName = "sq"

// Server lints every open document against one platform grammar and
// publishes the diagnostics.
type Server struct {
	grammar *parser.Grammar
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer creates a language server linting for the given grammar.
func NewServer(grammar *parser.Grammar, version string) *Server {
	s := &Server{
		grammar: grammar,
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio serves requests on stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	// The client can override the platform via initializationOptions.
	if opts, ok := params.InitializationOptions.(map[string]any); ok {
		if name, ok := opts["platform"].(string); ok {
			if g, err := platform.Lookup(name); err == nil {
				s.grammar = g
			}
		}
	}

	capabilities := s.handler.CreateServerCapabilities()

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
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publish(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.publish(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			s.publish(ctx, params.TextDocument.URI, string(data))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Clear diagnostics for the closed document.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publish lints text and sends the resulting diagnostics for uri.
func (s *Server) publish(ctx *glsp.Context, uri string, text string) {
	var msgs []lint.Message
	if parser.LooksLikeList(text) {
		_, msgs, _ = parser.ParseList(text, s.grammar, parser.Options{})
	} else {
		_, msgs, _ = parser.Parse(text, s.grammar, parser.Options{})
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		diagnostics = append(diagnostics, toDiagnostic(text, m))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toDiagnostic(text string, m lint.Message) protocol.Diagnostic {
	span := m.FirstSpan()
	if span.IsSynthetic() {
		span.Start, span.End = 0, 0
	}
	startLine, startCol := parser.LineColumn(text, span.Start)
	endLine, endCol := parser.LineColumn(text, span.End)

	severity := protocol.DiagnosticSeverityWarning
	if m.Severity >= lint.Error {
		severity = protocol.DiagnosticSeverityError
	}
	source := lsName
	code := protocol.IntegerOrString{Value: string(m.Code)}

	message := m.Label
	if m.Details != "" {
		message += ": " + m.Details
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(startLine), Character: protocol.UInteger(startCol)},
			End:   protocol.Position{Line: protocol.UInteger(endLine), Character: protocol.UInteger(endCol)},
		},
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  message,
	}
}

func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	path := u.Path
	// Windows drive letters arrive as /C:/...
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
