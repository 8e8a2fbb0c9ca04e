package domain

import (
	"fmt"
	"slices"
	"strings"
)

// BasePathMinVersion is the first compiler release accepting --base-path.
var BasePathMinVersion = NewCompilerVersion(0, 6, 9)

// GroupKey is the compiler configuration shared by every member of a group.
type GroupKey struct {
	Version    CompilerVersion
	EVMVersion string
	ViaIR      bool
}

// String renders the key as "version[/evm][/via-ir]", which doubles as the group ID.
func (k GroupKey) String() string {
	var b strings.Builder
	b.WriteString(k.Version.String())
	if k.EVMVersion != "" {
		b.WriteString("/" + k.EVMVersion)
	}
	if k.ViaIR {
		b.WriteString("/via-ir")
	}
	return b.String()
}

// LibraryBinding maps a library defined in Module to a deployed address.
type LibraryBinding struct {
	Module  ModuleKey
	Name    string
	Address string
}

// String renders the binding as "module:name=address".
func (l LibraryBinding) String() string {
	return fmt.Sprintf("%s:%s=%s", l.Module, l.Name, l.Address)
}

// CompareBindings orders bindings by module then library name.
func CompareBindings(a, b LibraryBinding) int {
	if c := strings.Compare(a.Module.String(), b.Module.String()); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// CompilationGroup is one compiler invocation.
type CompilationGroup struct {
	ID  string
	Key GroupKey
	// Members are the entry modules compiled for their own sake.
	// Every resolved entry module is a member of exactly one group.
	Members []ModuleKey
	// Sources is the import closure of every member. Sources may overlap across groups.
	Sources []ModuleKey
	// Locations maps every source to its physical file.
	Locations map[ModuleKey]string
	// Aliases maps other keys an import reached a source under to the source's key.
	Aliases map[ModuleKey]ModuleKey
	// Remappings are the rules the sources were resolved through.
	Remappings []RemappingRule
	// Libraries are the bindings for modules in Sources.
	Libraries        []LibraryBinding
	SupportsBasePath bool
	// Fingerprint changes whenever any input of the invocation changes.
	Fingerprint string
}

// HasSource reports whether key is part of the group's input set.
func (g *CompilationGroup) HasSource(key ModuleKey) bool {
	return slices.Contains(g.Sources, key)
}

// RemappingStrings renders the remappings in compiler argument form.
func (g *CompilationGroup) RemappingStrings() []string {
	out := make([]string, len(g.Remappings))
	for i, r := range g.Remappings {
		out[i] = r.String()
	}
	return out
}
