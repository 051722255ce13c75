// Package imports decides the import block of a generated Java file.
//
// A render records every referenced name into a Registry. A Planner then
// combines the registry with the caller's Registrations, the file-wide
// WildcardPolicy, and the built-in skip flag into a Plan: the static and
// ordinary import lines to emit, and the set of names the body may write
// in short form.
package imports
