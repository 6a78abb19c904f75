// Package compiler expands @import directives into a single flattened text.
//
// # Overview
//
// A source file may contain whole-line directives of the form:
//
//	@import(relative/or/absolute/path.txt)
//
// The resolver replaces each directive with the recursively resolved content
// of the referenced file. Relative paths are always resolved against the
// directory of the file that contains the directive.
//
// # Usage
//
//	r := compiler.NewResolver(
//	    compiler.WithLogger(logger),
//	    compiler.WithCycleReporter(func(c compiler.Cycle) { ... }),
//	)
//	result, err := r.Compile(ctx, "docs/index.txt")
//	if err != nil {
//	    return err
//	}
//	err = compiler.WriteOutput("build/index.txt", result.Content, 0o644)
//
// # Cycles
//
// A directive that references a file already being expanded on the current
// descent is dropped: it contributes nothing to the output and resolution
// continues. The cycle is reported through the optional CycleReporter and
// recorded in Result.Cycles, but it is never returned as an error.
//
// # Errors
//
// A missing or unreadable file anywhere in the import tree fails the whole
// compilation with a *FileNotFoundError (errors.Is(err, ErrFileNotFound)).
package compiler
