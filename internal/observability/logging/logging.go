package logging

import (
	"context"
	"io"
	"log/slog"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the component that emitted a record.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Level         slog.Leveler
}

// NewLogger builds a JSON logger carrying the service attributes on every
// record plus the request ID and trace attributes found in the context.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})

	attrs := []slog.Attr{
		slog.String("service.name", cfg.ServiceInfo.Name),
		slog.String("service.version", cfg.ServiceInfo.Version),
		slog.String("env", string(cfg.Environment)),
	}
	if cfg.ServiceInfo.Revision != "" {
		attrs = append(attrs, slog.String("service.revision", cfg.ServiceInfo.Revision))
	}
	if cfg.DefaultModule != "" {
		attrs = append(attrs, slog.String("module", string(cfg.DefaultModule)))
	}

	return slog.New(&contextHandler{
		Handler:   base.WithAttrs(attrs),
		projectID: cfg.GCPProjectID,
	})
}

// replaceAttr renames the level key to the one Cloud Logging reads.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		a.Key = "severity"
	}
	if a.Key == slog.MessageKey {
		a.Key = "message"
	}
	return a
}

type contextHandler struct {
	slog.Handler
	projectID string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	if module := ModuleFromContext(ctx); module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}
	r.AddAttrs(traceAttrs(ctx, h.projectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID}
}
