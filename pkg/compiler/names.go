package compiler

import (
	"strings"
	"unicode"
)

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
	"true": {}, "false": {}, "null": {}, "var": {}, "record": {}, "yield": {},
}

// sanitizeIdent maps a source identifier (which may carry '@' or '-') onto a
// legal Java identifier.
func sanitizeIdent(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			if i == 0 && unicode.IsDigit(r) {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	out := b.String()
	if _, ok := javaKeywords[out]; ok {
		return out + "_"
	}
	return out
}

func className(name string) string {
	safe := sanitizeIdent(strings.TrimSuffix(name, "_"))
	if safe == "" || safe == "_" {
		return "Main"
	}
	return strings.ToUpper(safe[:1]) + safe[1:]
}

type nameMangler struct {
	seen map[string]int
}

func newNameMangler() *nameMangler {
	return &nameMangler{seen: make(map[string]int)}
}

func (m *nameMangler) unique(base string) string {
	if base == "" {
		base = "_"
	}
	count := m.seen[base]
	m.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "_" + string('a'+rune(count-1))
}
