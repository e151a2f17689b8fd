// Package hostenv abstracts the ambient process environment the bootstrap
// checks read: PATH lookups, file probes, directory access, subprocess
// execution, and the host OS identity.
//
// Checks accept a Host rather than calling the os and exec packages
// directly so tests can substitute a fake host and exercise every OS
// branch deterministically.
package hostenv
