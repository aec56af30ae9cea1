package log

// Package log provides a small opinionated wrapper around Go's standard
// library logging facilities. Its goal is to offer a consistent way to emit
// logs per component while keeping the surface minimal.
//
// Key Features
//
//   - Per component loggers via ForComponent(name)
//   - Automatic prefix in every line: `[name]` (example: `[search] query failed`)
//   - Convenience level helpers: Infof, Warnf, Errorf, Debugf
//   - Debug logging can be enabled globally (SetGlobalDebug) or per
//     component (EnableDebugFor / DisableDebugFor)
//   - Uses the standard library *log.Logger* under the hood
//   - Central output writer (SetOutput) that updates existing loggers
//
// Basic Usage
//
//	l := log.ForComponent("search")
//	l.Infof("served %d results", n)
//	l.Debugf("raw query: %s", q) // only with debug enabled
//
// Thread Safety
//
// All exported functions are safe for concurrent use. Internally the
// package relies on sync.Map and atomic primitives for minimal locking.
//
// Testing
//
// Tests can redirect output by calling SetOutput with a bytes.Buffer,
// enabling assertions on log contents.
