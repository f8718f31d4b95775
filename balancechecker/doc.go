/*
Package balancechecker implements a stateless read-only utility
contract returning native or NEP-17 token balances of many accounts in
a single invocation. It is deployed next to the score registry for
off-chain tooling convenience and shares no state with it.

# Contract notifications

Balance checker contract does not produce notifications to process.
*/
package balancechecker
