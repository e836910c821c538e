/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration. Each extension keeps a single
configuration entity, stored under the "_c:<package name>" key.

A configuration can be loaded from the genesis file and later updated with
a message signed by its administrator.
*/
package gconf
