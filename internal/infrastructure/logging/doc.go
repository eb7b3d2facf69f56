// Package logging provides structured logging for the Gray Logic panel.
//
// It wraps log/slog with configuration-driven level, format and output
// selection, plus default service/version fields on every record. The
// pipeline treats logging as fire-and-forget: boundary failures (bad
// payloads, unparseable topics, command dispatch errors) are logged and
// otherwise dropped.
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("panel booted", "mode", "live")
//
//	ingressLog := log.With("component", "ingress")
package logging
