package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
	"github.com/okian/rostra/internal/domain/scoring"
)

// ratingFile is the YAML layout of the overall rating model. Position keys
// are codes ("0") or labels ("QB").
type ratingFile struct {
	Positions map[string]scoring.Coefficients `koanf:"positions"`
}

// importanceFile is the YAML layout of the importance model.
type importanceFile struct {
	Intercept float64            `koanf:"intercept"`
	Overall   float64            `koanf:"overall"`
	Depth     float64            `koanf:"depth"`
	Bias      map[string]float64 `koanf:"bias"`
}

func loadYAML(path string, out any) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	// Column names never contain '|', so weight keys are kept whole.
	k := koanf.New("|")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	if err := k.UnmarshalWithConf("", out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return nil
}

func positionKey(positions reference.PositionMap, key string) (model.Position, error) {
	if code, err := strconv.Atoi(key); err == nil {
		p := model.Position(code)
		if !p.Valid() {
			return 0, fmt.Errorf("%w: code %d", reference.ErrUnknownPosition, code)
		}
		return p, nil
	}
	return positions.Code(key)
}

// LoadRatingModel reads the per-position overall rating coefficients.
func LoadRatingModel(path string) (*scoring.RatingModel, error) {
	var f ratingFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	positions := reference.Positions()
	sets := make(map[model.Position]scoring.Coefficients, len(f.Positions))
	for key, c := range f.Positions {
		pos, err := positionKey(positions, key)
		if err != nil {
			return nil, fmt.Errorf("rating model %s: %w", path, err)
		}
		sets[pos] = c
	}
	return scoring.NewRatingModel(scoring.WithCoefficients(sets)), nil
}

// LoadImportanceModel reads the importance coefficients.
func LoadImportanceModel(path string) (scoring.ImportanceModel, error) {
	var f importanceFile
	if err := loadYAML(path, &f); err != nil {
		return scoring.ImportanceModel{}, err
	}
	positions := reference.Positions()
	m := scoring.ImportanceModel{
		Intercept: f.Intercept,
		Overall:   f.Overall,
		Depth:     f.Depth,
		Bias:      make(map[model.Position]float64, len(f.Bias)),
	}
	for key, b := range f.Bias {
		pos, err := positionKey(positions, key)
		if err != nil {
			return scoring.ImportanceModel{}, fmt.Errorf("importance model %s: %w", path, err)
		}
		m.Bias[pos] = b
	}
	return m, nil
}
