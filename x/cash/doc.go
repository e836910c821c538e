/*
Package cash implements the wallets of the application and the movement of
coins between them.

A transfer into an address can be observed. Observers are notified after
the coins were moved and within the same transaction, so any observer
failure discards the transfer as well.
*/
package cash
