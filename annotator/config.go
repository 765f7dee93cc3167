package annotator

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lewtec/labelbridge/domain"
)

// classFile is the on-disk shape of a class list.
type classFile struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name     string     `yaml:"name"`
	Color    domain.RGB `yaml:"color"`
	Geometry string     `yaml:"geometry"`
}

// LoadClasses reads label class definitions from a YAML file. Geometry
// defaults to bbox when omitted; unknown geometry names and unnamed classes
// fail with a validation error.
func LoadClasses(filename string) ([]domain.LabelClassInfo, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var file classFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Classes) == 0 {
		return nil, domain.Validationf("class file %s defines no classes", filename)
	}

	classes := make([]domain.LabelClassInfo, 0, len(file.Classes))
	for i, entry := range file.Classes {
		if entry.Name == "" {
			return nil, domain.Validationf("class %d has no name", i)
		}
		if entry.Geometry == "" {
			entry.Geometry = string(domain.GeometryBBox)
		}
		geometry, err := domain.ParseGeometryType(entry.Geometry)
		if err != nil {
			return nil, err
		}
		classes = append(classes, domain.LabelClassInfo{
			Name:         entry.Name,
			Color:        entry.Color,
			GeometryType: geometry,
		})
	}
	return classes, nil
}
