// Package rules provides the built-in rewrite rules. Each rule registers
// itself in the rewrite registry from an init function; import this
// package for side effects to make the rules available by name.
package rules
