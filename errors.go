package iniconfig

import "errors"

var (
	// ErrInvalidSection indicates an empty or otherwise unusable section name.
	ErrInvalidSection = errors.New("invalid section")
	// ErrInvalidKey indicates a key that would not read back as the same key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidValue indicates a value spanning more than one line.
	ErrInvalidValue = errors.New("invalid value")
	// ErrReadConfig indicates the config file could not be read.
	ErrReadConfig = errors.New("failed to read config")
	// ErrCreateConfigDir indicates a config directory could not be created.
	ErrCreateConfigDir = errors.New("failed to create config directory")
	// ErrWriteConfig indicates a config file could not be written.
	ErrWriteConfig = errors.New("failed to write config")
)
