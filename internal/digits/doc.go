// Package digits holds the dictionary of spelled-out digit words used by the
// stream scanner. A Dictionary is a trie stored as a flat arena of nodes and
// addressed by Node indices; it is built once and only read afterwards.
package digits
