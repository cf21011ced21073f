package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Language records a language code under the key "lang".
func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Requested records the language asked for by a caller under the key "requested".
func Requested(lang string) slog.Attr {
	return slog.String("requested", lang)
}

// Namespace records a translation namespace under the key "ns".
func Namespace(ns string) slog.Attr {
	return slog.String("ns", ns)
}

// SessionID records the client session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// Seq records a change request sequence number under the key "seq".
func Seq(n uint64) slog.Attr {
	return slog.Uint64("seq", n)
}

// RequestID records the correlation id of an HTTP request under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
