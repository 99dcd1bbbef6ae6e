// Package records turns loosely shaped input (JSON bodies, YAML or JSON
// files) into typed models. Unknown fields are rejected here so the
// scorers only ever see well-formed records.
package records

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	KindProfile = "profile"
	KindPosting = "posting"
)

var validate = validator.New()

// DecodeProfile decodes one profile from a generic map.
func DecodeProfile(raw any) (models.Profile, error) {
	return decode[models.Profile](KindProfile, -1, raw)
}

// DecodePosting decodes one posting from a generic map.
func DecodePosting(raw any) (models.Posting, error) {
	return decode[models.Posting](KindPosting, -1, raw)
}

// ReadProfiles reads a YAML or JSON list of profiles.
func ReadProfiles(r io.Reader) ([]models.Profile, error) {
	return readList[models.Profile](KindProfile, r)
}

// ReadPostings reads a YAML or JSON list of postings.
func ReadPostings(r io.Reader) ([]models.Posting, error) {
	return readList[models.Posting](KindPosting, r)
}

// LoadProfiles reads profiles from a file.
func LoadProfiles(path string) ([]models.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProfiles(f)
}

// LoadPostings reads postings from a file.
func LoadPostings(path string) ([]models.Posting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPostings(f)
}

func readList[T any](kind string, r io.Reader) ([]T, error) {
	// JSON is valid YAML, so one decoder serves both formats.
	var items []any
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if err == io.EOF {
			return []T{}, nil
		}
		return nil, &DecodeError{Kind: kind, Index: -1, Cause: fmt.Errorf("expected a list of records: %w", err)}
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		rec, err := decode[T](kind, i, item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decode[T any](kind string, index int, raw any) (T, error) {
	var out T
	if _, ok := raw.(map[string]any); !ok {
		return out, &DecodeError{Kind: kind, Index: index, Cause: fmt.Errorf("expected an object, got %T", raw)}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
			yearsHook,
		),
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(raw); err != nil {
		return out, &DecodeError{Kind: kind, Index: index, Cause: err}
	}

	if err := validate.Struct(out); err != nil {
		return out, &DecodeError{Kind: kind, Index: index, Cause: err}
	}
	return out, nil
}

// yearsHook accepts "5+ years" style strings for integer fields.
func yearsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	years, ok := matcher.ParseYears(data.(string)).Get()
	if !ok {
		return nil, fmt.Errorf("cannot read %q as a whole number", data)
	}
	return years, nil
}
