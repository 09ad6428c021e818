// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// SetLogger routes the package's trace output to l. A nil logger
// silences tracing again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

// logf writes a debug-level trace line.
func logf(format string, args ...any) {
	logger.Debugf(format, args...)
}
