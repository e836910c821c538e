/*
Package utils provides the decorators every transaction of the application
passes through: panic recovery, logging, action tagging and savepoints
that make each message an all-or-nothing unit of work.
*/
package utils
