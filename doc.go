// Package wallet is a local-first personal finance tracker. It keeps a cash
// ledger and the recurring obligations that feed it, in a single JSON
// snapshot the user owns.
//
// The core functionalities include:
//   - Ledger: transactions are committed, edited and deleted while the cash
//     balance always equals the fold of their signed amounts.
//   - Obligations: installments, receivables and bank certificates have a
//     schedule of periods. Settling a period commits an auto-generated
//     transaction linked back to it, deleting that transaction reopens the
//     period.
//   - Audit trail: every mutation is recorded, newest first, in a bounded log.
//   - Snapshot: the whole state is exported, imported and persisted as one
//     JSON document (see [DecodeState] and [EncodeState]).
//
// This package serves as the foundational logic for the `wlt` command-line
// tool.
package wallet
