// Package wizard implements the onboarding submission wizard: a fixed
// sequence of steps sharing one form-state container, a declarative rule
// table per step, and a controller that only moves forward once the
// current step validates and, on the submitting step, once the remote
// write has succeeded.
//
// The package has no terminal or network dependencies. Hosts render the
// current step, write field values into the FormState, and call Advance,
// Retreat or Submit on the Controller.
package wizard
