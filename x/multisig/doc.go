/*
Package multisig implements a vault controlled by a fixed set of owners.

Any owner can submit a transaction that moves value held by the vault to a
destination together with an opaque payload. A transaction is executed once
a quorum of owners confirmed it and the vault holds enough value. Owners can
revoke their confirmation as long as the transaction was not executed.

Execution marks the transaction as executed and debits the vault before the
destination gets the control. A destination calling back into the vault
observes that state. If the destination fails, all changes made during the
attempt are dropped and the transaction stays pending.

Every state transition is recorded in an append-only event log stored next
to the vault state. Observers registered with the Vault are notified about
new events once the outermost operation completes.
*/
package multisig
