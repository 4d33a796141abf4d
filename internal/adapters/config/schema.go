package config

// Manifestfile represents the structure of embark.yaml and embark.toml.
type Manifestfile struct {
	Name    string               `yaml:"name" toml:"name"`
	Version string               `yaml:"version" toml:"version"`
	Engine  EngineDTO            `yaml:"engine" toml:"engine"`
	Build   BuildDTO             `yaml:"build" toml:"build"`
	Members []string             `yaml:"members" toml:"members"`
	Package map[string]FormatDTO `yaml:"package" toml:"package"`
}

// EngineDTO pins the engine build.
type EngineDTO struct {
	Version string `yaml:"version" toml:"version"`
	Mirror  string `yaml:"mirror" toml:"mirror"`
}

// BuildDTO configures the pipeline.
type BuildDTO struct {
	Entrypoint string `yaml:"entrypoint" toml:"entrypoint"`
	// Args is a shell-quoted string appended to the native build.
	Args string `yaml:"args" toml:"args"`
}

// FormatDTO is one packaging block.
type FormatDTO struct {
	Name      string `yaml:"name" toml:"name"`
	Icon      string `yaml:"icon" toml:"icon"`
	Label     string `yaml:"label" toml:"label"`
	PackageID string `yaml:"package_id" toml:"package_id"`
	Keystore  string `yaml:"keystore" toml:"keystore"`
	APILevel  int    `yaml:"api_level" toml:"api_level"`
}
