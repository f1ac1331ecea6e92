// Package session records inbound editor events as JSON lines and replays
// them through a dispatcher.
//
// Each line is one key.Event:
//
//	{"type":"keydown","key":"k","code":"KeyK","mod":true,"shift":false,"sel":{"start":0,"end":0},"time":"..."}
//	{"type":"input","content":"abc","sel":{"start":3,"end":3},"time":"..."}
//
// Lines are written with sjson and read back with gjson, so unknown fields
// are ignored and a partially written final line can be skipped.
package session
