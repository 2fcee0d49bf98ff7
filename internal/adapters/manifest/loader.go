// Package manifest provides the component manifest loader for modforge.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	toml "github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ManifestLoader for TOML and YAML manifests.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load parses the manifest at path into domain components, preserving
// declaration order. Cross-component id references are not resolved
// here; that is the resolver's job.
func (l *Loader) Load(path string) ([]*domain.Component, error) {
	//nolint:gosec // Path comes from Discover or an explicit user flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParseFailed, "unsupported manifest format"),
			"path", path)
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	if m.Name == "" {
		l.Logger.Warn(fmt.Sprintf("manifest %s has no top-level name", filepath.Base(path)))
	}

	components := make([]*domain.Component, 0, len(m.Components))
	for _, dto := range m.Components {
		component, err := buildComponent(dto)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}

	return components, nil
}

// Discover walks up from cwd looking for a manifest file and returns its
// path. A TOML manifest wins over a YAML one in the same directory.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir := cwd

	for {
		tomlPath := filepath.Join(currentDir, domain.ManifestTOMLName)
		if _, err := os.Stat(tomlPath); err == nil {
			return tomlPath, nil
		}

		yamlPath := filepath.Join(currentDir, domain.ManifestYAMLName)
		if _, err := os.Stat(yamlPath); err == nil {
			return yamlPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "searched up from "+cwd), "cwd", cwd)
}

func buildComponent(dto *ComponentDTO) (*domain.Component, error) {
	if dto.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidComponentName, "building component"),
			"id", dto.ID)
	}

	// Components without an explicit id are addressable by name.
	id := dto.ID
	if id == "" {
		id = dto.Name
	}

	selected := true
	if dto.Selected != nil {
		selected = *dto.Selected
	}

	instructions, err := buildInstructions(dto)
	if err != nil {
		return nil, err
	}

	return &domain.Component{
		ID:            id,
		Name:          dto.Name,
		Author:        dto.Author,
		Dependencies:  dto.DependsOn,
		Restrictions:  dto.Restricts,
		InstallBefore: dto.InstallBefore,
		InstallAfter:  dto.InstallAfter,
		Instructions:  instructions,
		Notice:        dto.Notice,
		IsSelected:    selected,
		InstallState:  domain.StateNotStarted,
	}, nil
}

func buildInstructions(dto *ComponentDTO) ([]domain.Instruction, error) {
	if len(dto.Instructions) == 0 {
		return nil, nil
	}

	instructions := make([]domain.Instruction, 0, len(dto.Instructions))
	for _, ins := range dto.Instructions {
		kind := domain.InstructionKind(strings.ToLower(ins.Action))
		switch kind {
		case domain.InstructionCopy, domain.InstructionMove,
			domain.InstructionDelete, domain.InstructionMkDir:
		default:
			err := zerr.Wrap(domain.ErrUnknownInstruction, ins.Action)
			err = zerr.With(err, "action", ins.Action)
			return nil, zerr.With(err, "component", dto.Name)
		}

		instructions = append(instructions, domain.Instruction{
			Kind:        kind,
			Source:      ins.Source,
			Destination: ins.Destination,
		})
	}

	return instructions, nil
}
