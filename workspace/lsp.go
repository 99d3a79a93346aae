package workspace

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javalint/check"
)

const lsName = "javalint"

// LoadFunc builds the runner for a workspace rooted at rootDir.
type LoadFunc func(rootDir string) (*check.Runner, error)

// LSPServer publishes violations as diagnostics for the documents an
// editor opens.
type LSPServer struct {
	ws      *Workspace
	load    LoadFunc
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewLSPServer(version string, load LoadFunc) *LSPServer {
	ls := &LSPServer{
		version: version,
		load:    load,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	runner, err := ls.load(rootDir)
	if err != nil {
		return nil, err
	}
	ls.ws = New(rootDir, runner)

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

// initialized checks the whole workspace once so that later edits of
// unchanged files hit the cache.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	go func() {
		if err := ls.ws.ScanAll(context.Background()); err != nil {
			log.Warningf("scanning %s: %s", ls.ws.RootDir(), err)
		}
	}()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	info, changed, err := ls.ws.ScanFile(path)
	if err != nil {
		log.Errorf("checking %s: %s", path, err)
		return nil
	}
	if changed {
		publish(ctx, params.TextDocument.URI, info.Violations)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.ws.RemoveFile(path)
	publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	if !IsJavaFile(path) {
		return nil
	}
	info, changed, err := ls.ws.UpdateFile(path, content)
	if err != nil {
		log.Errorf("checking %s: %s", path, err)
		return nil
	}
	if changed {
		publish(ctx, uri, info.Violations)
	}
	return nil
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, violations []check.Violation) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(violations),
	})
}

// Diagnostics converts violations to LSP diagnostics. LSP positions are
// zero-based; a violation covers a single character.
func Diagnostics(violations []check.Violation) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(violations))
	for _, v := range violations {
		start := protocol.Position{
			Line:      protocol.UInteger(max(v.Line-1, 0)),
			Character: protocol.UInteger(max(v.Column-1, 0)),
		}
		end := start
		end.Character++
		severity := diagnosticSeverity(v.Severity)
		source := lsName
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: v.Check},
			Source:   &source,
			Message:  v.Message,
		})
	}
	return diags
}

func diagnosticSeverity(s check.Severity) protocol.DiagnosticSeverity {
	switch s {
	case check.Error:
		return protocol.DiagnosticSeverityError
	case check.Warning:
		return protocol.DiagnosticSeverityWarning
	case check.Info:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
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

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
