package domain

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultContractsFolder is the source directory relative to the project root.
	DefaultContractsFolder = "contracts"
	// DefaultPackagesFolder holds installed dependencies, relative to the project root.
	DefaultPackagesFolder = "contracts/.cache"
	// DefaultCompilersFolder holds installed compiler binaries, relative to the project root.
	DefaultCompilersFolder = ".soldeps/compilers"
	// DefaultCacheFile persists scan results, relative to the project root.
	DefaultCacheFile = ".soldeps/scan-cache.json"
	// DefaultExtension is the only extension scanned when none are configured.
	DefaultExtension = ".sol"
	// DefaultParallelism bounds concurrent compiler invocations.
	DefaultParallelism = 4
)

// EVMVersions lists the EVM targets a compiler accepts, oldest first.
var EVMVersions = []string{
	"homestead", "tangerineWhistle", "spuriousDragon", "byzantium", "constantinople",
	"petersburg", "istanbul", "berlin", "london", "paris", "shanghai", "cancun", "prague",
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Config is the user configuration as loaded from disk, before validation.
type Config struct {
	ContractsFolder string
	PackagesFolder  string
	CompilersFolder string
	CacheFile       string
	Extensions      []string
	Exclude         []string
	Parallelism     int
	Solidity        SolidityConfig
}

// SolidityConfig holds compiler options.
type SolidityConfig struct {
	Version         string
	EVMVersion      string
	ViaIR           bool
	AutoInstall     bool
	ImportRemapping []string
	// Libraries maps module path to library name to deployed address.
	Libraries map[string]map[string]string
}

// Settings is a validated Config with defaults applied and paths made absolute.
type Settings struct {
	ProjectRoot      string
	ContractsDir     string
	PackagesDir      string
	CompilersDir     string
	CacheFile        string
	Extensions       []string
	Exclude          []string
	Parallelism      int
	PreferredVersion CompilerVersion
	EVMVersion       string
	ViaIR            bool
	AutoInstall      bool
	Remappings       []RemappingRule
	Libraries        []LibraryBinding
}

// Validate applies defaults and checks every option against projectRoot.
func (c *Config) Validate(projectRoot string) (*Settings, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}

	s := &Settings{
		ProjectRoot:  root,
		ContractsDir: absUnder(root, c.ContractsFolder, DefaultContractsFolder),
		PackagesDir:  absUnder(root, c.PackagesFolder, DefaultPackagesFolder),
		CompilersDir: absUnder(root, c.CompilersFolder, DefaultCompilersFolder),
		CacheFile:    absUnder(root, c.CacheFile, DefaultCacheFile),
		Exclude:      slices.Clone(c.Exclude),
		Parallelism:  c.Parallelism,
		ViaIR:        c.Solidity.ViaIR,
		AutoInstall:  c.Solidity.AutoInstall,
	}
	if s.Parallelism <= 0 {
		s.Parallelism = DefaultParallelism
	}

	s.Extensions = normalizeExtensions(c.Extensions)

	if raw := strings.TrimSpace(c.Solidity.Version); raw != "" {
		v, err := ParseCompilerVersion(raw)
		if err != nil {
			return nil, zerr.With(err, "field", "solidity.version")
		}
		s.PreferredVersion = v
	}

	if raw := strings.TrimSpace(c.Solidity.EVMVersion); raw != "" {
		i := slices.IndexFunc(EVMVersions, func(v string) bool { return strings.EqualFold(v, raw) })
		if i < 0 {
			return nil, zerr.With(ErrInvalidEVMVersion, "evm_version", raw)
		}
		s.EVMVersion = EVMVersions[i]
	}

	for i, entry := range c.Solidity.ImportRemapping {
		rule, err := ParseRemapping(entry, i)
		if err != nil {
			return nil, err
		}
		s.Remappings = append(s.Remappings, rule)
	}

	contractsFolder := filepath.ToSlash(relOrSelf(root, s.ContractsDir))
	for module, libs := range c.Solidity.Libraries {
		key := NewModuleKey(strings.TrimPrefix(NormalizePath(module), contractsFolder+"/"))
		for name, addr := range libs {
			if !addressPattern.MatchString(addr) {
				err := zerr.With(ErrInvalidLibraryAddress, "library", name)
				return nil, zerr.With(err, "address", addr)
			}
			s.Libraries = append(s.Libraries, LibraryBinding{Module: key, Name: name, Address: addr})
		}
	}
	slices.SortFunc(s.Libraries, CompareBindings)

	return s, nil
}

// HasExtension reports whether file has one of the in-scope extensions.
func (s *Settings) HasExtension(file string) bool {
	return slices.Contains(s.Extensions, filepath.Ext(file))
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return []string{DefaultExtension}
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func absUnder(root, p, def string) string {
	if strings.TrimSpace(p) == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

func relOrSelf(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}
