package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropekit/internal/document"
)

// docFuncs returns the functions of the doc table.
func docFuncs(d *document.Document) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"insert": func(L *lua.LState) int {
			pos, text := L.CheckInt(1), L.CheckString(2)
			raiseIf(L, d.Insert(pos, text))
			return 0
		},
		"delete": func(L *lua.LState) int {
			start, end := L.CheckInt(1), L.CheckInt(2)
			raiseIf(L, d.Delete(start, end))
			return 0
		},
		"replace": func(L *lua.LState) int {
			start, end, text := L.CheckInt(1), L.CheckInt(2), L.CheckString(3)
			raiseIf(L, d.Replace(start, end, text))
			return 0
		},
		"rebalance": func(L *lua.LState) int {
			d.Rebalance()
			return 0
		},
		"balance": func(L *lua.LState) int {
			d.Balance()
			return 0
		},
		"text": func(L *lua.LState) int {
			L.Push(lua.LString(d.Text()))
			return 1
		},
		"slice": func(L *lua.LState) int {
			s, err := d.Rope().Slice(L.CheckInt(1), L.CheckInt(2))
			raiseIf(L, err)
			L.Push(lua.LString(s))
			return 1
		},
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(d.Len()))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(d.Rope().Height()))
			return 1
		},
		"balanced": func(L *lua.LState) int {
			L.Push(lua.LBool(d.Rope().IsBalanced()))
			return 1
		},
		"version": func(L *lua.LState) int {
			L.Push(lua.LNumber(d.Version()))
			return 1
		},
	}
}

// raiseIf turns a Go error into a Lua error that pcall can catch.
func raiseIf(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}
