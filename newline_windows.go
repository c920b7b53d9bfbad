//go:build windows

package iniconfig

var newline = "\r\n"
