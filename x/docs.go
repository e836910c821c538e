/*
Package x contains the authentication contract shared by the extensions.

All sub-packages are extensions implementing Handlers and Decorators that
are combined together by the application. Handlers never depend on a
concrete signature scheme, an Authenticator is passed into their
constructors instead.
*/
package x
