// Package structured reads and writes the structured form of a rope.
//
// A rope node is written as a record tagged "leaf" or "branch". Leaves carry
// "text"; branches carry "size" and optional "left"/"right" records. The same
// shape is used for JSON, YAML and TOML:
//
//	{"kind": "branch", "size": 4,
//	 "left": {"kind": "leaf", "text": "te"},
//	 "right": {"kind": "leaf", "text": "st"}}
//
// Input is checked against an embedded JSON schema before it is decoded, and
// then validated again semantically by rope.NodeFromRecord.
package structured
