// Package errors provides the classified error primitives used across remotebuild.
//
// Every failure that reaches the CLI carries a category, a severity, a retry
// strategy and structured context (usually the offending path), so it can be
// mapped to an exit code and printed with enough detail to diagnose it.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, not_found, permission, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: whether repeating the operation can help
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryPermission, "failed to remove path").
//		Fatal().
//		WithContext("path", path).
//		Build()
package errors
