// Package stealth implements stealth payments over a UTXO ledger using
// Diffie-Hellman tuples.
//
// A sender who knows the recipient's public point U = x*G draws two
// ephemeral scalars r and y and publishes the payload
//
//	(G_r, G_y, U_r, U_y) = (r*G, y*G, r*U, y*U)
//
// in registers R4..R7 of an output guarded by proveDHTuple(G_r, G_y, U_r, U_y).
// Without x the two pairs look like unrelated random points. The recipient
// recognizes the payload by checking x*G_r == U_r and x*G_y == U_y, and hands a
// WitnessDescriptor to an external signer that proves knowledge of x.
//
// All operations are synchronous and stateless; Generator and Detector values
// may be shared between goroutines.
package stealth
