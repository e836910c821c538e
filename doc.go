/*
Package shine defines the interfaces shared by all parts of the praise and
vote incentive engine, as well as the simple types that are passed between
them: key value stores, messages, transactions, handlers and decorators.

We pass context through context.Context between the application, the
decorators and the handlers. This package declares the keys used to store
block information, such as height and chain id, and the logger. Each
extension may add its own keys, for example x/sigs stores the signers of
the current transaction.

For every value T that we want to keep in the context there are two
functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level code
cannot overwrite it.
*/
package shine
