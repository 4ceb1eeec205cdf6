// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The default logger writes to stderr through PrettyHandler, which prints a
// coloured level and timestamp followed by the record attributes as JSON.
// The level comes from BREC_LOG_LEVEL (DEBUG, INFO, WARN or ERROR, default WARN)
// and can be changed at run time with SetLevel.
package ctxlog
