package vizerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrCreateFile indicates a destination file could not be created.
	ErrCreateFile = errors.New("create file")

	// ErrCreateDir indicates an output directory could not be created.
	ErrCreateDir = errors.New("create directory")

	// ErrInvalidConfig indicates invalid export parameters were provided.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrReadFile indicates a file wasn't found or couldn't be read.
	ErrReadFile = errors.New("read file")

	// ErrYAMLUnmarshal indicates an error occurred while unmarshaling YAML.
	ErrYAMLUnmarshal = errors.New("unmarshal YAML")

	// ErrUnknownFieldKind indicates an unrecognized analytic field kind.
	ErrUnknownFieldKind = errors.New("unknown field kind")
)
