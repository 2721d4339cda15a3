// Package output provides styled terminal output for handlergen.
//
// # Usage
//
//	output.Success("Generated user_handler.go")
//	output.Info("Existing file differs from the template")
//	output.Step("--- user_handler.go")
//	output.Error("writing user_handler.go: permission denied")
//
// # Streams
//
// Success, Info and Step write to the standard stream; Error and Verbose
// write to the diagnostic stream so that stdout only carries what the
// command was asked to produce. Both streams can be swapped with
// SetWriters, which the command layer does with cobra's writers.
//
// # Styling
//
//   - Success: green bold
//   - Error: ❌ red bold
//   - Info: cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
