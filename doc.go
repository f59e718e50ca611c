/*
Package custody defines interfaces used throughout the module, such as:
storage, addresses, genesis options and context values.

Look into this package to get a brief overview of design decisions made around
interfaces and extension building blocks. The multi-owner vault itself lives
in x/multisig, the value holding execution environment in x/cash.

We pass context through context.Context between the host, the vault and the
destinations it invokes. There should exist two functions for every XYZ of
type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody
