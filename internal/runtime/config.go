package runtime

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/quantmill/simseries/pkg/errors"
)

// Config configures one simulation run's data-access context.
type Config struct {
	// RunID identifies the run in logs. Generated when left empty.
	RunID string `yaml:"run_id" json:"run_id" jsonschema:"title=Run ID,description=Identifier for this simulation run" validate:"omitempty,uuid"`
	// StartTime is the optional initial simulated date for the run's clock.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional initial simulated date"`
	// EndTime is the optional last simulated date, used for validation only.
	EndTime optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional final simulated date"`
	// WaitTimeout bounds how long a blocking series access waits for its
	// background computation. Zero means wait indefinitely.
	WaitTimeout time.Duration `yaml:"wait_timeout" json:"wait_timeout" jsonschema:"title=Wait Timeout,description=Upper bound on blocking waits for background computations" validate:"gte=0"`
}

// DefaultConfig returns a config with a fresh run ID and no wait bound.
func DefaultConfig() Config {
	return Config{
		RunID:       uuid.New().String(),
		StartTime:   optional.None[time.Time](),
		EndTime:     optional.None[time.Time](),
		WaitTimeout: 0,
	}
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type config struct {
		RunID       string     `yaml:"run_id"`
		StartTime   *time.Time `yaml:"start_time"`
		EndTime     *time.Time `yaml:"end_time"`
		WaitTimeout string     `yaml:"wait_timeout"`
	}

	var parsed config
	if err := unmarshal(&parsed); err != nil {
		return err
	}

	c.RunID = parsed.RunID
	c.StartTime = optional.None[time.Time]()
	c.EndTime = optional.None[time.Time]()
	c.WaitTimeout = 0

	if parsed.StartTime != nil {
		c.StartTime = optional.Some(*parsed.StartTime)
	}

	if parsed.EndTime != nil {
		c.EndTime = optional.Some(*parsed.EndTime)
	}

	if parsed.WaitTimeout != "" {
		timeout, err := time.ParseDuration(parsed.WaitTimeout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid wait_timeout", err)
		}

		c.WaitTimeout = timeout
	}

	return nil
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end_time must not precede start_time")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if t.String() == "time.Duration" {
				return &jsonschema.Schema{
					Type: "string",
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "simseries-run-config"
	schema.Description = "Configuration schema for one simulation run's data-access context"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}
