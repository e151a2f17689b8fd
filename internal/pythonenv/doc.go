// Package pythonenv locates a Python interpreter, installs declared
// dependency groups through pip, and verifies that each declared module
// imports cleanly.
//
// Only interpreter discovery can fail hard; installation and verification
// report per-item results so one broken package never hides the state of
// the rest.
package pythonenv
