// Package generator provides the building blocks handlergen uses to turn a
// rendered template into a file on disk.
//
// # Features
//
//   - Template rendering with sprig helpers and a parse cache
//   - File operations that are validated before anything is written
//   - Dry-run reporting
//   - Myers diff between an existing file and freshly rendered content
//
// # Operations
//
// Rendering is kept apart from writing. A generator returns operations and
// the caller decides how to run them:
//
//	ops := []generator.Operation{
//		&generator.WriteFileOp{Path: "user_handler.go", Content: content, Mode: 0644},
//	}
//	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true}); err != nil {
//		return err
//	}
//
// Every operation is validated before the first one executes. A write that
// fails half way is not rolled back.
package generator
