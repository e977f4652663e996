// Package config populates configuration structs from environment
// variables using `env` struct tags.
//
// Fields are mapped with an env tag, optionally carrying a default:
//
//	type Config struct {
//	    APIKey   string        `env:"API_KEY"`
//	    Endpoint string        `env:"ENDPOINT"`
//	    Timeout  time.Duration `env:"TIMEOUT,default:60s"`
//	    Debug    bool          `env:"DEBUG,default:false"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "SKYGEAR_"})
//	// reads SKYGEAR_API_KEY, SKYGEAR_ENDPOINT, ...
//
// A .env file in the working directory is loaded first when present;
// real environment variables win over .env entries.
package config
