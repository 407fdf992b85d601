// Package aspect provides ready-made decorators for cross-cutting concerns.
package aspect
