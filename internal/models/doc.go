// Package models defines the core domain models for SplitIt.
//
// # Models
//
//   - Receipt: a scanned or hand-entered receipt with items, participants,
//     tax, and tip
//   - ReceiptItem: a line item, assigned to one or more participants with
//     optional weights
//   - Participant: a person on a receipt (the host or an invited guest)
//   - PaymentRecord: one payment event against a receipt (append-only)
//   - SettlementResult: the derived who-owes-what state; computed on demand,
//     never persisted
//   - User: a registered account (hosts log in; guests may be phone-only)
//
// # Design Principles
//
//  1. All monetary fields use money.Money (integer minor units, no floats).
//  2. Receipts are validated once, at construction; the calculator assumes a
//     valid receipt and never re-checks these invariants.
//  3. SettlementResult is a pure function's output. There is no cached
//     settlement state anywhere to fall out of sync.
//  4. Item assignment is explicit: an item either carries assignments or it
//     fails validation. A missing assignee list is never treated as "free".
package models
