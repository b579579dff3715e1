package config

// SourceFileExt is the default suffix of input files.
const SourceFileExt = ".js"

// TargetFileExt is the default suffix of emitted files.
const TargetFileExt = ".ts"

// ProjectFileName is the per-project configuration file, looked up in the
// source directory.
const ProjectFileName = "typeshift.yaml"

// Overwrite policies for pre-existing target files.
const (
	OverwriteReplace = "replace"
	OverwriteSkip    = "skip"
)
