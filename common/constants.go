package common

// SrcFileExtension is the conventional extension for DwiSlpy source files.
const (
	SrcFileExtension = ".dwi"
	ConfigFileName   = "dwislpy.toml"
	ToolchainVersion = "0.1.0"
)
