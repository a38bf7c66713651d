package errors

import "fmt"

// Common error wrapping patterns used by the CLI

// WrapLoadError wraps a failure to load packages
func WrapLoadError(patterns []string, cause error) *BaseError {
	return Wrap(LoadErrorCode, fmt.Sprintf("failed to load packages %v", patterns), cause).
		WithContext("patterns", patterns).
		WithSuggestion("Run 'go build' on the packages to see the underlying problem")
}

// WrapModuleError wraps a failure to read or interpret go.mod
func WrapModuleError(path string, cause error) *BaseError {
	return Wrap(ModuleErrorCode, fmt.Sprintf("failed to read module file '%s'", path), cause).
		WithContext("path", path)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(packagePath, file string, cause error) *GenerationError {
	message := fmt.Sprintf("failed to generate %s for %s", file, packagePath)
	return &GenerationError{
		BaseError: Wrap(GenerationErrorCode, message, cause).
			WithContext("package", packagePath).
			WithContext("file", file),
		PackagePath: packagePath,
		TargetFile:  file,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error without an underlying cause
func ConfigurationError(configType, message string) *BaseError {
	return New(ConfigurationErrorCode, message).
		WithContext("config_type", configType)
}
