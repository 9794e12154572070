// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package notation renders expanded text in compact mathematical notation.
// The output is for display only and is not valid input to the evaluator.
package notation

import "strings"

// Math drops thunk binders and forcing calls, writes binders as "λx." and
// leaves everything else as is. Bound names are not renamed, so nested
// expansions may show colliding variables.
func Math(text string) string {
	text = strings.ReplaceAll(text, "lambda:", "")
	text = strings.ReplaceAll(text, "()", "")
	text = strings.ReplaceAll(text, ":", ".")
	return strings.ReplaceAll(text, "lambda ", "λ")
}
