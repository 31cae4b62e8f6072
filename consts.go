package rfc2047x

const (
	Name    = "rfc2047x"
	Version = "0.1.0"
)
