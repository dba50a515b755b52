// Package config holds the run settings: credentials from the command line, the rest from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of the environment variables read by Load.
const Prefix = "ZCLEAN"

// Credentials are the object-storage keys.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

type Config struct {
	Dir     string `envconfig:"DIR" default:"."`
	Output  string `envconfig:"OUTPUT" default:"clean_data.csv"`
	Archive string `envconfig:"ARCHIVE" default:"clean_data.zip"`
	Bucket  string `envconfig:"BUCKET" default:"zillowdataesrk"`
	Region  string `envconfig:"REGION" default:"us-east-1"`

	// Zips is the CSV of zip code centroids with header zipcode,latitude,longitude, in decimal degrees.
	// Zips are read as strings, so leading zeros survive. The Census ZCTA Gazetteer file (GEOID, INTPTLAT,
	// INTPTLONG) has this content once its columns are renamed.
	Zips   string  `envconfig:"ZIPS" default:"zip_centroids.csv"`
	Radius float64 `envconfig:"RADIUS" default:"25"`

	// Source is csv, clickhouse or postgres. DSN is required for the latter two.
	Source string `envconfig:"SOURCE" default:"csv"`
	DSN    string `envconfig:"DSN"`

	Report string `envconfig:"REPORT"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	Credentials Credentials `ignored:"true"`
}

// Load reads .env if it exists, then the environment, and takes the credentials from args, which must be
// the access key id and the secret access key. The credentials are passed on as given.
func Load(args []string) (*Config, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("need access key id and secret access key, got %d arguments", len(args))
	}

	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if e := envconfig.Process(Prefix, cfg); e != nil {
		return nil, e
	}

	cfg.Credentials = Credentials{AccessKeyID: args[0], SecretAccessKey: args[1]}

	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	c.Source = strings.ToLower(c.Source)
	switch c.Source {
	case "csv":
	case "clickhouse", "postgres":
		if c.DSN == "" {
			return fmt.Errorf("source %s needs %s_DSN", c.Source, Prefix)
		}
	default:
		return fmt.Errorf("unknown source %s", c.Source)
	}

	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", c.Radius)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %s", c.LogFormat)
	}

	return nil
}
