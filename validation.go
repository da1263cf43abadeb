package sparkapi

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; validator instances cache per-struct
// metadata, so one is enough for the whole package.
var validate = validator.New()

// ValidateConfig checks a bootstrap Config against the validation tags on
// target, which must be a struct pointer. The map is round-tripped through
// JSON so the struct's json tags decide which keys matter; keys the struct
// does not name pass through untouched.
func ValidateConfig(cfg Config, target any) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode session config: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode session config into %T: %w", target, err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("session config invalid: %w", err)
	}
	return nil
}
