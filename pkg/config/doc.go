// Package config loads env-tagged configuration structs.
//
// Every package in this service declares its own Config struct with
// `env` tags and defaults; the composition root loads each one through
// this package. A .env file in the working directory is read once,
// before the first parse, so local development needs no exported shell
// variables.
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
package config
