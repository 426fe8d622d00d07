// Package config loads typed configuration structs from environment
// variables using struct tags, with optional .env file support for local
// development.
//
// Fields are declared with `env` and `envDefault` tags and parsed by
// github.com/caarlos0/env. A .env file, when present in the working
// directory, is loaded once per process via github.com/joho/godotenv before
// the first parse.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
// Load returns ErrParsingConfig (joined with the underlying parse error)
// when a variable cannot be converted to its field type; MustLoad panics
// instead, for configuration the process cannot run without.
package config
