// Package config loads resolver configuration from the environment, with
// an optional YAML file overriding the built-in provider cascade.
//
// All variables are prefixed SITEICON_ and every one has a sensible
// default: a zero-configuration process runs with the in-memory store,
// the default cascade and info-level logging.
package config
