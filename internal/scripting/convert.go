package scripting

import (
	"fmt"
	"math"
	"sort"

	json "github.com/goccy/go-json"
	lua "github.com/yuin/gopher-lua"
)

// maxTableDepth bounds recursion when converting nested or cyclic tables.
const maxTableDepth = 32

// decodeTable converts a Lua table into out via its JSON form. Tables whose
// keys are exactly 1..n become arrays and an empty table becomes an empty
// array; any other table becomes an object with string keys.
func decodeTable(tbl *lua.LTable, out any) error {
	v, err := toGo(tbl, 0)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding lua table: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding lua table: %w", err)
	}
	return nil
}

// encodeValue converts v to a Lua value via its JSON form. JSON null becomes
// nil, so a nil slice field is absent from the resulting table.
func encodeValue(L *lua.LState, v any) (lua.LValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return lua.LNil, fmt.Errorf("encoding %T for lua: %w", v, err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return lua.LNil, fmt.Errorf("decoding %T for lua: %w", v, err)
	}
	return toLua(L, generic), nil
}

// MarshalValue renders a Lua value returned by a hook as indented JSON.
// Tables follow the same array/object rules as decodeTable.
//
// Postcondition: Returns the JSON encoding, or an error for functions,
// userdata and tables nested too deeply.
func MarshalValue(lv lua.LValue) ([]byte, error) {
	v, err := toGo(lv, 0)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding lua value: %w", err)
	}
	return data, nil
}

func toGo(lv lua.LValue, depth int) (any, error) {
	if depth > maxTableDepth {
		return nil, fmt.Errorf("lua table nested deeper than %d levels", maxTableDepth)
	}
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(v), nil
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), nil
		}
		return f, nil
	case lua.LString:
		return string(v), nil
	case *lua.LTable:
		return tableToGo(v, depth)
	}
	return nil, fmt.Errorf("lua %s values cannot be converted", lv.Type())
}

func tableToGo(tbl *lua.LTable, depth int) (any, error) {
	n := tbl.Len()
	count := 0
	tbl.ForEach(func(lua.LValue, lua.LValue) { count++ })

	if count == n {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			v, err := toGo(tbl.RawGetInt(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	}

	obj := make(map[string]any, count)
	var convErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		key, ok := k.(lua.LString)
		if !ok {
			convErr = fmt.Errorf("lua table mixes array and %s keys", k.Type())
			return
		}
		gv, err := toGo(v, depth+1)
		if err != nil {
			convErr = err
			return
		}
		obj[string(key)] = gv
	})
	if convErr != nil {
		return nil, convErr
	}
	return obj, nil
}

func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		tbl := L.CreateTable(len(val), 0)
		for _, item := range val {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.CreateTable(0, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.RawSetString(k, toLua(L, val[k]))
		}
		return tbl
	}
	return lua.LNil
}
