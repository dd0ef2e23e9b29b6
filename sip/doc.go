// Package sip implements the Sprinkler Interface Protocol (SIP) used by WiFi irrigation controllers
// through their LNK/LNK2 WiFi modules.
//
// The package is transport agnostic, it provides:
//   - Registry: the immutable table of commands (opcode, parameter slots, request length) and
//     responses (opcode, field layout, decode transform).
//   - Frame codec: Encode builds the JSON-RPC "tunnelSip" envelope carrying a hex command string,
//     Registry.Decode parses a decrypted reply into a Response.
//   - Envelope: Encrypt and Decrypt implement the AES-256-CBC envelope exchanged with the controller.
//
// Wire format of an envelope:
//
//	sha256(plaintext) [32 bytes] | iv [16 bytes] | AES-CBC(sha256(password), iv, padded plaintext)
//
// Commands and responses are hex strings whose first two characters are the opcode. Lengths in the
// protocol are expressed in bytes, i.e. pairs of hex characters, while field offsets and widths in
// a ResponseSpec are expressed in hex characters (nibbles).
package sip
