package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// section splits "webhook.url" into ("webhook", "url"); top-level keys have an
// empty section.
func section(key string) (string, string) {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// groupOptions buckets options by TOML table, preserving declaration order.
func groupOptions(opts []ConfigOption) ([]string, map[string][]ConfigOption) {
	order := []string{""}
	groups := map[string][]ConfigOption{}
	for _, o := range opts {
		sec, _ := section(o.Key)
		if _, ok := groups[sec]; !ok && sec != "" {
			order = append(order, sec)
		}
		groups[sec] = append(groups[sec], o)
	}
	return order, groups
}

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# pressgen configuration (TOML)\n\n")

	order, groups := groupOptions(GetConfigOptions())
	for _, sec := range order {
		opts := groups[sec]
		if len(opts) == 0 {
			continue
		}
		if sec != "" {
			b.WriteString("[" + sec + "]\n")
		}
		for _, o := range opts {
			for _, l := range optionLines(o) {
				b.WriteString(l + "\n")
			}
		}
	}
	return b.String()
}

// UpdateTOML merges missing defaults into an existing TOML document and
// comments out keys that are no longer part of the schema. The second return
// value reports whether anything changed.
func UpdateTOML(existing string) (string, bool, error) {
	var raw map[string]any
	md, err := toml.Decode(existing, &raw)
	if err != nil {
		return "", false, fmt.Errorf("parse config: %w", err)
	}

	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}
	present := make(map[string]bool)
	for _, k := range md.Keys() {
		present[k.String()] = true
	}

	lines := strings.Split(strings.TrimRight(existing, "\n"), "\n")
	out := make([]string, 0, len(lines))
	changed := false
	current := ""
	sectionEnd := map[string]int{"": 0}
	sawHeader := false

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			current = strings.TrimSpace(strings.Trim(trim, "[]"))
			sawHeader = true
			out = append(out, line)
			sectionEnd[current] = len(out)
			continue
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			if !sawHeader {
				sectionEnd[""] = len(out)
			}
			continue
		}
		key, ok := lineKey(line)
		if ok {
			full := key
			if current != "" {
				full = current + "." + key
			}
			if present[full] && !known[full] {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				out = append(out, indent+"# OUTDATED: option removed from config schema")
				out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
				changed = true
				sectionEnd[current] = len(out)
				continue
			}
		}
		out = append(out, line)
		sectionEnd[current] = len(out)
	}

	order, groups := groupOptions(GetConfigOptions())
	var tail []string
	// Insert from the bottom up so earlier offsets stay valid.
	inserts := map[int][]string{}
	for _, sec := range order {
		var missing []string
		for _, o := range groups[sec] {
			if !present[o.Key] {
				missing = append(missing, optionLines(o)...)
			}
		}
		if len(missing) == 0 {
			continue
		}
		changed = true
		at, ok := sectionEnd[sec]
		if !ok {
			tail = append(tail, "", "["+sec+"]")
			tail = append(tail, missing...)
			continue
		}
		inserts[at] = append(inserts[at], missing...)
	}

	merged := make([]string, 0, len(out)+len(tail))
	for i := 0; i <= len(out); i++ {
		if add, ok := inserts[i]; ok {
			merged = append(merged, add...)
		}
		if i < len(out) {
			merged = append(merged, out[i])
		}
	}
	merged = append(merged, tail...)
	return strings.Join(merged, "\n") + "\n", changed, nil
}

func lineKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return "", false
	}
	return strings.Trim(key, `"'`), true
}

func optionLines(o ConfigOption) []string {
	_, name := section(o.Key)
	var lines []string
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, name+" = "+tomlValue(o.Default), "")
}

func tomlValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case []string:
		q := make([]string, len(x))
		for i, s := range x {
			q[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(q, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// SetTOMLValue sets a single string key in an existing TOML document and
// leaves every other line, comments included, untouched. A missing key is
// added at the end of its table; a missing table is appended.
func SetTOMLValue(existing, key, value string) (string, error) {
	if _, err := toml.Decode(existing, new(map[string]any)); err != nil {
		return "", fmt.Errorf("parse config: %w", err)
	}
	sec, name := section(key)
	assign := name + " = " + tomlValue(value)

	lines := strings.Split(strings.TrimRight(existing, "\n"), "\n")
	if existing == "" {
		lines = nil
	}
	current := ""
	end := -1
	if sec == "" {
		end = 0
	}
	replaced := false
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			current = strings.TrimSpace(strings.Trim(trim, "[]"))
			if current == sec {
				end = i + 1
			}
			continue
		}
		if current != sec || trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		if k, ok := lineKey(line); ok && k == name {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[i] = indent + assign
			replaced = true
			break
		}
		end = i + 1
	}

	switch {
	case replaced:
	case end >= 0:
		lines = append(lines[:end], append([]string{assign}, lines[end:]...)...)
	default:
		lines = append(lines, "", "["+sec+"]", assign)
	}
	out := strings.Join(lines, "\n") + "\n"
	if _, err := toml.Decode(out, new(map[string]any)); err != nil {
		return "", fmt.Errorf("set %s: %w", key, err)
	}
	return out, nil
}
