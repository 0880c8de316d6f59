// Package interp is DwiSlpy's tree-walking interpreter, grounded on spec
// section 4.2. It walks the checked AST directly against a run-time
// environment mapping names to values, raising a *diag.Error for any
// run-time fault.
package interp

import "dwislpy/common"

// Env is a call's local environment: a fresh mapping from name to value,
// created per invocation and per top-level run of main.
type Env struct {
	vars map[string]common.Value
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]common.Value)}
}

func (e *Env) Get(name string) (common.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Set(name string, v common.Value) {
	e.vars[name] = v
}
