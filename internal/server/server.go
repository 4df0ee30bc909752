// Package server runs the catalog tool server over JSON-RPC 2.0.
package server

import (
	"context"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/solidcat/solidcat/internal/tools"
)

type Server struct {
	registry *tools.Registry
	handler  *Handler
}

func New(registry *tools.Registry) *Server {
	return &Server{
		registry: registry,
		handler:  NewHandler(registry),
	}
}

// Serve speaks newline-delimited JSON-RPC over rwc until the peer
// disconnects or ctx is canceled.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(s.handler))

	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
}

// ServeStdio serves on the process's stdin/stdout; logs stay on stderr.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, stdioPipe{})
}

func (s *Server) Registry() *tools.Registry {
	return s.registry
}

type stdioPipe struct{}

func (stdioPipe) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioPipe) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdioPipe) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
