// Package boolexpr parses the restricted C-like expression language used in
// calculation and selection definitions, and extracts the variable names an
// expression refers to.
//
// The grammar covers arithmetic (`+ - * /`), boolean and comparison operators
// (`|| && ! == != > >= < <=`), numeric literals with C suffixes, `true` and
// `false`, bare and scoped identifiers (`A::B::C`), function calls written
// with parentheses or braces (`f(a, b)`, `T{a, b}`), member access (`a.b`,
// `a->b`) and method calls (`a.b(x)`, `a->b(x)`).
//
// Operator precedence, lowest first: `||`, `&&`, comparisons, `+ -`, `* /`,
// unary `! -`, then calls and member access.
//
// Nothing is evaluated. The analyzer only answers "which names does this
// expression use as values", which is what the dag resolver needs to build
// dependency edges.
package boolexpr
