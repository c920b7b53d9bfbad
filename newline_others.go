//go:build !windows

package iniconfig

var newline = "\n"
