package logfields

import (
	"io/fs"
	"log/slog"
	"strings"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath          = "path"
	KeyBuildID       = "build_id"
	KeyApplication   = "application"
	KeyProject       = "project"
	KeyArchitectures = "architectures"
	KeyWorkspace     = "workspace"
	KeyEntries       = "entries"
	KeyBytes         = "bytes"
	KeyMode          = "mode"
	KeyDurationMS    = "duration_ms"
	KeyError         = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Application(a string) slog.Attr  { return slog.String(KeyApplication, a) }
func Project(p string) slog.Attr      { return slog.String(KeyProject, p) }
func Workspace(p string) slog.Attr    { return slog.String(KeyWorkspace, p) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Bytes(n int64) slog.Attr         { return slog.Int64(KeyBytes, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Mode(m fs.FileMode) slog.Attr    { return slog.String(KeyMode, m.String()) }

// Architectures joins names with commas so the value stays a single token in text logs.
func Architectures(archs []string) slog.Attr {
	return slog.String(KeyArchitectures, strings.Join(archs, ","))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
