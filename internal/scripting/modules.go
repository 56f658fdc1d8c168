package scripting

import (
	"errors"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/roll"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/game/validation"
)

// RegisterModules defines the sheet and engine globals in L:
//
//	sheet.check(template, tbl)            -> nil | {kind, message, name, points, max, skills}
//	sheet.roll(template, tbl, kind, name) -> {target, roll, modifier, value} | nil, err
//	sheet.base(template)                  -> sheet table
//	sheet.templates()                     -> {name, ...}
//	engine.log.debug/info/warn/error(msg)
//	engine.dice.roll(expr)                -> {dice, modifier, total}
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	sheet := L.NewTable()
	L.SetFuncs(sheet, map[string]lua.LGFunction{
		"check":     m.luaCheck,
		"roll":      m.luaRoll,
		"base":      m.luaBase,
		"templates": m.luaTemplates,
	})
	L.SetGlobal("sheet", sheet)

	engine := L.NewTable()
	logTbl := L.NewTable()
	L.SetFuncs(logTbl, map[string]lua.LGFunction{
		"debug": m.luaLog(m.logger.Debug),
		"info":  m.luaLog(m.logger.Info),
		"warn":  m.luaLog(m.logger.Warn),
		"error": m.luaLog(m.logger.Error),
	})
	engine.RawSetString("log", logTbl)

	diceTbl := L.NewTable()
	diceTbl.RawSetString("roll", L.NewFunction(m.luaDiceRoll))
	engine.RawSetString("dice", diceTbl)
	L.SetGlobal("engine", engine)
}

func (m *Manager) template(L *lua.LState) *ruleset.Template {
	t, err := m.registry.Lookup(L.CheckString(1), nil)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return t
}

func checkSheet(L *lua.LState, n int) *character.Sheet {
	var s character.Sheet
	if err := decodeTable(L.CheckTable(n), &s); err != nil {
		L.ArgError(n, err.Error())
	}
	return &s
}

func push(L *lua.LState, v any) {
	lv, err := encodeValue(L, v)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lv)
}

func (m *Manager) luaCheck(L *lua.LState) int {
	tmpl := m.template(L)
	s := checkSheet(L, 2)

	err := m.validator.Check(tmpl, s)
	if err == nil {
		L.Push(lua.LNil)
		return 1
	}
	var se *validation.SheetError
	if !errors.As(err, &se) {
		L.RaiseError("%s", err.Error())
	}
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(se.Kind.String()))
	tbl.RawSetString("message", lua.LString(se.Error()))
	if se.Name != "" {
		tbl.RawSetString("name", lua.LString(se.Name))
	}
	tbl.RawSetString("points", lua.LNumber(se.Points))
	tbl.RawSetString("max", lua.LNumber(se.Max))
	if se.Skills != nil {
		skills := L.CreateTable(len(se.Skills), 0)
		for _, name := range se.Skills {
			skills.Append(lua.LString(name))
		}
		tbl.RawSetString("skills", skills)
	}
	L.Push(tbl)
	return 1
}

func (m *Manager) luaRoll(L *lua.LState) int {
	tmpl := m.template(L)
	s := checkSheet(L, 2)
	target, err := roll.ParseTarget(L.CheckString(3) + ":" + L.CheckString(4))
	if err != nil {
		L.ArgError(3, err.Error())
	}

	res, err := m.resolver.Roll(tmpl, s, target)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	push(L, res)
	return 1
}

func (m *Manager) luaBase(L *lua.LState) int {
	s, err := character.NewBaseSheet(m.template(L))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	push(L, s)
	return 1
}

func (m *Manager) luaTemplates(L *lua.LState) int {
	names := m.registry.Names()
	tbl := L.CreateTable(len(names), 0)
	for _, n := range names {
		tbl.Append(lua.LString(n))
	}
	L.Push(tbl)
	return 1
}

func (m *Manager) luaLog(logf func(string, ...zap.Field)) lua.LGFunction {
	return func(L *lua.LState) int {
		logf(L.CheckString(1), zap.String("source", "lua"))
		return 0
	}
}

// engine.dice.roll reports the summed dice, the modifier and the total.
func (m *Manager) luaDiceRoll(L *lua.LState) int {
	res, err := m.roller.RollExpr(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	sum := 0
	for _, d := range res.Dice {
		sum += d
	}
	tbl := L.NewTable()
	tbl.RawSetString("dice", lua.LNumber(sum))
	tbl.RawSetString("modifier", lua.LNumber(res.Modifier))
	tbl.RawSetString("total", lua.LNumber(res.Total()))
	L.Push(tbl)
	return 1
}
