// SPDX-License-Identifier: MPL-2.0

// Package rule implements the boolean inclusion rules of a menu: All,
// Category, Filename and the And, Or and Not combinators.
//
// Expr is a closed sum type. Evaluation is pure and total: every expression
// yields true or false for every application.
package rule
