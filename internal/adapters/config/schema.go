package config

import "go.trai.ch/soldeps/internal/core/domain"

// Soldepsfile represents the structure of the soldeps.yaml configuration file.
type Soldepsfile struct {
	ContractsFolder string      `yaml:"contracts_folder"`
	PackagesFolder  string      `yaml:"packages_folder"`
	CompilersFolder string      `yaml:"compilers_folder"`
	CacheFile       string      `yaml:"cache_file"`
	Extensions      []string    `yaml:"extensions"`
	Exclude         []string    `yaml:"exclude"`
	Parallelism     int         `yaml:"parallelism"`
	Solidity        SolidityDTO `yaml:"solidity"`
}

// SolidityDTO represents the compiler section of the configuration.
type SolidityDTO struct {
	Version         string                       `yaml:"version"`
	EVMVersion      string                       `yaml:"evm_version"`
	ViaIR           bool                         `yaml:"via_ir"`
	AutoInstall     bool                         `yaml:"auto_install"`
	ImportRemapping []string                     `yaml:"import_remapping"`
	Libraries       map[string]map[string]string `yaml:"libraries"`
}

func (f *Soldepsfile) toDomain() *domain.Config {
	return &domain.Config{
		ContractsFolder: f.ContractsFolder,
		PackagesFolder:  f.PackagesFolder,
		CompilersFolder: f.CompilersFolder,
		CacheFile:       f.CacheFile,
		Extensions:      f.Extensions,
		Exclude:         f.Exclude,
		Parallelism:     f.Parallelism,
		Solidity: domain.SolidityConfig{
			Version:         f.Solidity.Version,
			EVMVersion:      f.Solidity.EVMVersion,
			ViaIR:           f.Solidity.ViaIR,
			AutoInstall:     f.Solidity.AutoInstall,
			ImportRemapping: f.Solidity.ImportRemapping,
			Libraries:       f.Solidity.Libraries,
		},
	}
}
