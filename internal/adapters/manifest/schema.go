package manifest

// Manifest represents the structure of the modforge.toml / modforge.yaml
// component manifest file.
type Manifest struct {
	Version    string          `yaml:"version" toml:"version"`
	Name       string          `yaml:"name" toml:"name"`
	Components []*ComponentDTO `yaml:"components" toml:"components"`
}

// ComponentDTO represents a component definition in the manifest.
type ComponentDTO struct {
	ID            string   `yaml:"id" toml:"id"`
	Name          string   `yaml:"name" toml:"name"`
	Author        string   `yaml:"author" toml:"author"`
	DependsOn     []string `yaml:"dependsOn" toml:"dependsOn"`
	Restricts     []string `yaml:"restricts" toml:"restricts"`
	InstallBefore []string `yaml:"installBefore" toml:"installBefore"`
	InstallAfter  []string `yaml:"installAfter" toml:"installAfter"`
	Notice        string   `yaml:"notice" toml:"notice"`

	// Selected defaults to true when omitted.
	Selected *bool `yaml:"selected" toml:"selected"`

	Instructions []*InstructionDTO `yaml:"instructions" toml:"instructions"`
}

// InstructionDTO represents a single file operation in the manifest.
type InstructionDTO struct {
	Action      string `yaml:"action" toml:"action"`
	Source      string `yaml:"source" toml:"source"`
	Destination string `yaml:"destination" toml:"destination"`
}
