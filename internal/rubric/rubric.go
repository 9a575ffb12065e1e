// Package rubric holds the judging category table: the category names, the
// maximum each category can contribute, and the icon shown next to it.
//
// One Rubric value is loaded at startup and handed to everything that needs
// category maxima, so the aggregator and the score forms cannot disagree.
package rubric

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/judgedesk/internal/errors"
)

// Category is one fixed grouping of criteria
type Category struct {
	Name string  `yaml:"name" json:"name" validate:"required"`
	Max  float64 `yaml:"max" json:"max" validate:"gt=0"`
	Icon string  `yaml:"icon" json:"icon"`
}

// Rubric is an ordered category table
type Rubric struct {
	Categories []Category `yaml:"categories" json:"categories" validate:"required,min=1,unique=Name,dive"`
}

// Default category table used when no rubric file is configured
func Default() Rubric {
	return Rubric{Categories: []Category{
		{Name: "Fun", Max: 50, Icon: "party-popper"},
		{Name: "Function", Max: 40, Icon: "cog"},
		{Name: "Engineering and Crafting", Max: 40, Icon: "wrench"},
		{Name: "Creativity & Innovation", Max: 50, Icon: "lightbulb"},
	}}
}

var validate = validator.New()

// Load reads a rubric from a YAML file. An empty path returns Default.
func Load(path string) (Rubric, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rubric{}, fmt.Errorf("read rubric: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML rubric data
func Parse(data []byte) (Rubric, error) {
	var r Rubric
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Rubric{}, errors.Wrap(err, errors.ErrValidation, "invalid rubric yaml")
	}
	if err := r.Validate(); err != nil {
		return Rubric{}, err
	}
	return r, nil
}

// Validate checks the table has uniquely named categories with positive maxima
func (r Rubric) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(err, errors.ErrValidation, "invalid rubric")
	}
	return nil
}

// TotalPossible is the sum of all category maxima
func (r Rubric) TotalPossible() float64 {
	var total float64
	for _, c := range r.Categories {
		total += c.Max
	}
	return total
}

// Lookup returns the index of the category with exactly this name
func (r Rubric) Lookup(name string) (int, bool) {
	for i, c := range r.Categories {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Names lists category names in table order
func (r Rubric) Names() []string {
	names := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		names[i] = c.Name
	}
	return names
}
