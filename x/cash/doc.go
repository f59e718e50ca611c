/*
Package cash holds the balances of every account and moves value between
them.

Next to plain balance bookkeeping it provides an Environment that delivers
value together with an opaque payload to a destination. Destinations that
want to react to incoming value register a Receiver in a Router. All other
addresses simply accept the value.
*/
package cash
