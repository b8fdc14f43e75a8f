// Package policy provides an optional approval gate evaluated before every
// task of a flow – for example to require operator confirmation before a
// server reload, or to block selected write tasks in a read-only console.
package policy
