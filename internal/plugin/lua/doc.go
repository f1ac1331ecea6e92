// Package lua runs user hook scripts with gopher-lua.
//
// A hook script is plain Lua that may define two global functions:
//
//	function on_record(rec)   -- rec.id, rec.type, rec.key, rec.code, rec.message, rec.time
//	end
//
//	function on_save(content) -- buffer content at the moment of the save shortcut
//	end
//
// Both are optional. Scripts run in a State with only the base, table,
// string and math libraries; file loading functions are removed. Each call
// is bounded by an execution timeout.
//
// The script may call keyscribe.log(msg) to write through the editor logger.
package lua
