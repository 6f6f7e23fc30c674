package core

import (
	"github.com/pkg/errors"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrImageDecode   = errors.New("image decode failed")
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrShaderLink    = errors.New("shader program link failed")
	ErrInvalidConfig = errors.New("invalid configuration")
)
