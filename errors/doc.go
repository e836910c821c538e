/*
Package errors implements the error kinds used across the shine state machine.

Every error returned by a handler should wrap one of the registered root
errors. The root error carries the ABCI code that is returned to the client,
so a client can tell a duplicate vote from an empty pot without parsing text.

Extensions declare their own kinds with Register(code, description) during
program startup. Codes below 100 are reserved for this package.

Create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "..."), this attaches a stack trace to the innermost wrap.
Format an error with %+v to print that stack trace.
*/
package errors
