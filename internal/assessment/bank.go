package assessment

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/khrees2412/talentmatch/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

// Grading selects how answers in a category are scored.
type Grading string

const (
	// GradingKeywords scores keyword coverage only.
	GradingKeywords Grading = "keywords"
	// GradingKeywordsLength blends coverage with answer length.
	GradingKeywordsLength Grading = "keywords_length"
	// GradingKeywordsVocabulary blends coverage with a domain vocabulary bonus.
	GradingKeywordsVocabulary Grading = "keywords_vocabulary"
)

// Feedback holds the messages for one category. Summary is a format
// string taking keywords found and total keywords.
type Feedback struct {
	Summary   string `yaml:"summary" validate:"required"`
	Excellent string `yaml:"excellent" validate:"required"`
	Good      string `yaml:"good" validate:"required"`
	Improve   string `yaml:"improve" validate:"required"`
}

// Category is a named set of questions sharing a grading mode.
type Category struct {
	Name      string                      `yaml:"name" validate:"required"`
	Group     string                      `yaml:"group"`
	Grading   Grading                     `yaml:"grading" validate:"required,oneof=keywords keywords_length keywords_vocabulary"`
	Feedback  Feedback                    `yaml:"feedback"`
	Questions []models.AssessmentQuestion `yaml:"questions" validate:"required,min=1,dive"`
}

// Bank is a read-only question bank.
type Bank struct {
	categories []Category
	byName     map[string]int
}

var ErrInvalidBank = errors.New("invalid question bank")

// LoadBank decodes and validates a YAML question bank.
func LoadBank(r io.Reader) (*Bank, error) {
	var doc struct {
		Categories []Category `yaml:"categories" validate:"required,min=1,dive"`
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidBank, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	bank := &Bank{byName: make(map[string]int, len(doc.Categories))}
	for _, cat := range doc.Categories {
		key := categoryKey(cat.Name)
		if _, dup := bank.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidBank, cat.Name)
		}
		cat.Name = key
		bank.byName[key] = len(bank.categories)
		bank.categories = append(bank.categories, cat)
	}
	return bank, nil
}

// LoadBankFile reads a bank from path.
func LoadBankFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return LoadBank(f)
}

// DefaultBank returns the built-in question bank.
func DefaultBank() *Bank {
	bank, err := LoadBank(bytes.NewReader(defaultBankYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return bank
}

// Categories lists categories in file order.
func (b *Bank) Categories() []Category {
	out := make([]Category, len(b.categories))
	copy(out, b.categories)
	return out
}

// Category looks up a category by case-insensitive name.
func (b *Bank) Category(name string) (Category, bool) {
	i, ok := b.byName[categoryKey(name)]
	if !ok {
		return Category{}, false
	}
	return b.categories[i], true
}

// Questions returns the questions of a category, or nil if unknown.
func (b *Bank) Questions(name string) []models.AssessmentQuestion {
	cat, ok := b.Category(name)
	if !ok {
		return nil
	}
	return cat.Questions
}

func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
