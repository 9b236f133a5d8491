package servicemanager

import (
	"fmt"
	"os"

	"helloworld/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest lists the HAL instances a device declares. A declared name is
// "<name>.<interface>/<instance>".
//
//	hals:
//	  - name: vendor.brcm.helloworld
//	    version: 1
//	    interface: IHelloWorld
//	    instances: [default]
type Manifest struct {
	HALs []HAL `yaml:"hals" validate:"dive"`
}

type HAL struct {
	Name      string   `yaml:"name" validate:"required"`
	Version   int32    `yaml:"version" validate:"gte=1"`
	Interface string   `yaml:"interface" validate:"required"`
	Instances []string `yaml:"instances" validate:"required,min=1,dive,required"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := validator.New().Struct(manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &manifest, nil
}

// IsDeclared is false for every name when no manifest is loaded.
func (m *Manifest) IsDeclared(name string) bool {
	_, ok := m.Version(name)
	return ok
}

// Version returns the declared interface version of an instance.
func (m *Manifest) Version(name string) (int32, bool) {
	if m == nil {
		return 0, false
	}
	for _, hal := range m.HALs {
		for _, instance := range hal.Instances {
			if domain.ServiceInstance(hal.Name, hal.Interface, instance) == name {
				return hal.Version, true
			}
		}
	}
	return 0, false
}

// Declared returns every declared instance name.
func (m *Manifest) Declared() []string {
	if m == nil {
		return nil
	}
	var names []string
	for _, hal := range m.HALs {
		for _, instance := range hal.Instances {
			names = append(names, domain.ServiceInstance(hal.Name, hal.Interface, instance))
		}
	}
	return names
}
