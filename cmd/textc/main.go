// textc flattens text files that pull in other files with @import directives.
//
// A line consisting solely of @import(PATH) is replaced by the expanded
// content of PATH, resolved relative to the importing file. Circular imports
// are skipped; a missing file aborts the compilation without writing output.
//
// Usage:
//
//	# Compile a file
//	textc compile -i main.txt -o out.txt
//
//	# List the files an input pulls in
//	textc deps -i main.txt
//
//	# Recompile whenever a source changes, serving metrics on :9090
//	textc watch -i main.txt -o out.txt --metrics-addr :9090
//
//	# Show version information
//	textc version
package main

func main() {
	Execute()
}
